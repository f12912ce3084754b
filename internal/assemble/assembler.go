// Package assemble orchestrates one generation request: it gathers model
// content, plans the full output file set in memory, and materializes it
// into an isolated working tree for archiving.
package assemble

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"memekit_server/internal/ai"
	"memekit_server/internal/site"
	"memekit_server/internal/types"
)

// Roles are the bot skeletons emitted per request.
var Roles = []string{"main", "sidekick"}

type Assembler struct {
	gen      *ai.Generator
	renderer *site.Renderer
	workDir  string
}

func New(gen *ai.Generator, renderer *site.Renderer, workDir string) *Assembler {
	return &Assembler{gen: gen, renderer: renderer, workDir: workDir}
}

// Plan builds the complete output manifest in memory. Generator failures
// never surface here: copy and reply content degrade to placeholders and
// defaults inside the generator layer.
func (a *Assembler) Plan(ctx context.Context, req types.GenerationRequest) (types.RenderContext, []types.FileEntry, error) {
	content := a.generateContent(ctx, req.Narrative)
	rc := buildRenderContext(req, content)

	var files []types.FileEntry

	page, err := a.renderer.RenderIndex(rc)
	if err != nil {
		return types.RenderContext{}, nil, fmt.Errorf("render website page: %w", err)
	}
	files = append(files, types.FileEntry{Path: "website/" + site.IndexTemplate, Data: []byte(page)})

	if rc.MediaPath != "" {
		// Pure byte passthrough; zero-byte uploads are kept as-is.
		files = append(files, types.FileEntry{Path: "website/" + rc.MediaPath, Data: req.Media})
	}

	repliesJSON, err := ai.MarshalReplies(content.Replies)
	if err != nil {
		return types.RenderContext{}, nil, err
	}

	for _, role := range Roles {
		prefix := "bot_" + role + "/"
		for _, name := range site.BotTemplates {
			rendered, err := a.renderer.RenderBot(name, role, rc)
			if err != nil {
				return types.RenderContext{}, nil, fmt.Errorf("render bot artifact: %w", err)
			}
			files = append(files, types.FileEntry{Path: prefix + name, Data: []byte(rendered)})
		}
		files = append(files, types.FileEntry{Path: prefix + "bot_texts.json", Data: repliesJSON})
	}

	return rc, files, nil
}

// Assemble runs Plan and materializes the manifest under a fresh uniquely
// named working directory. Any filesystem failure is fatal to the request.
func (a *Assembler) Assemble(ctx context.Context, req types.GenerationRequest) (*types.WorkingTree, error) {
	_, files, err := a.Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	token := uuid.New().String()[:8]
	root := filepath.Join(a.workDir, "gen_"+token)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("allocate working directory: %w", err)
	}

	tree := &types.WorkingTree{Root: root, Token: token}
	for _, entry := range files {
		dst := filepath.Join(root, filepath.FromSlash(entry.Path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			tree.Remove()
			return nil, fmt.Errorf("create directory for %s: %w", entry.Path, err)
		}
		if err := os.WriteFile(dst, entry.Data, 0o644); err != nil {
			tree.Remove()
			return nil, fmt.Errorf("write %s: %w", entry.Path, err)
		}
		tree.Files = append(tree.Files, entry.Path)
	}
	sort.Strings(tree.Files)

	log.Printf("Assembled working tree %s with %d files", root, len(tree.Files))
	return tree, nil
}

// Preview renders only the website page from an in-memory context. It
// never touches the filesystem and skips the structured-reply call.
func (a *Assembler) Preview(ctx context.Context, req types.GenerationRequest) (string, error) {
	copyRes := a.gen.SiteCopy(ctx, req.Narrative)
	content := contentFromCopy(copyRes)
	content.Replies = ai.DefaultBotReplies()

	return a.renderer.RenderIndex(buildRenderContext(req, content))
}

func (a *Assembler) generateContent(ctx context.Context, narrative string) types.GeneratedContent {
	copyRes := a.gen.SiteCopy(ctx, narrative)
	content := contentFromCopy(copyRes)

	repliesRes := a.gen.BotReplies(ctx, narrative)
	replies, parsed := ai.ParseBotReplies(repliesRes.Text)
	content.Replies = replies
	content.RepliesFallback = repliesRes.Fallback || !parsed

	if content.CopyFallback || content.RepliesFallback {
		log.Printf("Generation degraded: copy_fallback=%t replies_fallback=%t", content.CopyFallback, content.RepliesFallback)
	}
	return content
}

func contentFromCopy(copyRes ai.Result) types.GeneratedContent {
	return types.GeneratedContent{
		Tagline:      firstLine(copyRes.Text),
		Intro:        copyRes.Text,
		Roadmap:      copyRes.Text,
		CopyFallback: copyRes.Fallback,
	}
}

func buildRenderContext(req types.GenerationRequest, content types.GeneratedContent) types.RenderContext {
	return types.RenderContext{
		CoinName:    req.CoinName,
		Ticker:      req.Ticker,
		Network:     req.Network,
		Tagline:     content.Tagline,
		Intro:       content.Intro,
		Roadmap:     content.Roadmap,
		XURL:        req.XURL,
		TelegramURL: req.TelegramURL,
		PumpFunURL:  req.PumpFunURL,
		WebsiteURL:  fmt.Sprintf("https://%s.example.app", site.Slug(req.CoinName)),
		MediaPath:   mediaPath(req.MediaName),
		Replies:     content.Replies,
	}
}

// mediaPath derives the website-relative media location, keeping the
// upload's original extension.
func mediaPath(mediaName string) string {
	if mediaName == "" {
		return ""
	}
	return "media/media" + filepath.Ext(mediaName)
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
