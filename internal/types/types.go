package types

import "os"

// GenerationRequest carries one pipeline run's input. It is built from the
// incoming form and never mutated afterwards.
type GenerationRequest struct {
	Narrative   string
	CoinName    string
	Ticker      string
	Network     string
	XURL        string
	TelegramURL string
	PumpFunURL  string

	// MediaName is the original upload filename; Media holds its bytes.
	// Both are empty when no file was uploaded.
	MediaName string
	Media     []byte
}

// BotReplies maps a reply category (e.g. "HYPE") to an ordered list of
// canned replies.
type BotReplies map[string][]string

// GeneratedContent is the model output shaped for rendering. It is never
// empty: when the upstream call is unavailable or unusable the fields hold
// tagged placeholder text and the Fallback flags are set.
type GeneratedContent struct {
	Tagline string
	Intro   string
	Roadmap string
	Replies BotReplies

	CopyFallback    bool
	RepliesFallback bool
}

// RenderContext is the value handed to every template. Constructed once per
// request from the request plus generated content.
type RenderContext struct {
	CoinName    string
	Ticker      string
	Network     string
	Tagline     string
	Intro       string
	Roadmap     string
	XURL        string
	TelegramURL string
	PumpFunURL  string
	WebsiteURL  string

	// MediaPath is the media location relative to the website root, or ""
	// when no media was uploaded.
	MediaPath string

	Replies BotReplies
}

// FileEntry is one planned output file, path relative to the working-tree
// root using forward slashes.
type FileEntry struct {
	Path string
	Data []byte
}

// WorkingTree describes a materialized per-request directory.
type WorkingTree struct {
	Root  string
	Token string
	// Files lists every written path relative to Root, slash-separated,
	// in sorted order.
	Files []string
}

// Remove deletes the tree from disk. Safe to call on an already-removed
// tree.
func (t *WorkingTree) Remove() error {
	return os.RemoveAll(t.Root)
}
