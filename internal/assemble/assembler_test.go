package assemble

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memekit_server/config"
	"memekit_server/internal/ai"
	"memekit_server/internal/site"
	"memekit_server/internal/types"
)

func newTestAssembler(t *testing.T) (*Assembler, string) {
	t.Helper()
	renderer, err := site.NewRenderer()
	require.NoError(t, err)
	workDir := t.TempDir()
	// No API key: the generator runs disabled and never touches the network.
	gen := ai.NewGenerator(config.Config{ModelID: "llama3-8b-8192"})
	return New(gen, renderer, workDir), workDir
}

func testRequest() types.GenerationRequest {
	return types.GenerationRequest{
		Narrative:   "community-driven frog coin",
		CoinName:    "NextPepe",
		Ticker:      "NPEPE",
		Network:     "Pump.fun",
		XURL:        "https://x.com/nextpepe",
		TelegramURL: "https://t.me/nextpepe",
		PumpFunURL:  "https://pump.fun/nextpepe",
	}
}

func TestAssembleLayout(t *testing.T) {
	a, _ := newTestAssembler(t)

	tree, err := a.Assemble(context.Background(), testRequest())
	require.NoError(t, err)
	defer tree.Remove()

	want := []string{"website/index.html"}
	for _, role := range []string{"main", "sidekick"} {
		for _, name := range append(site.BotTemplates, "bot_texts.json") {
			want = append(want, "bot_"+role+"/"+name)
		}
	}
	assert.ElementsMatch(t, want, tree.Files)

	for _, rel := range tree.Files {
		_, err := os.Stat(filepath.Join(tree.Root, filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}

	page, err := os.ReadFile(filepath.Join(tree.Root, "website", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "NextPepe")
	assert.Contains(t, string(page), "GENERATION_DISABLED")
	assert.Contains(t, string(page), "community-driven frog coin")
}

func TestAssembleDefaultRepliesBytes(t *testing.T) {
	a, _ := newTestAssembler(t)

	tree, err := a.Assemble(context.Background(), testRequest())
	require.NoError(t, err)
	defer tree.Remove()

	want, err := ai.MarshalReplies(ai.DefaultBotReplies())
	require.NoError(t, err)

	for _, role := range []string{"main", "sidekick"} {
		got, err := os.ReadFile(filepath.Join(tree.Root, "bot_"+role, "bot_texts.json"))
		require.NoError(t, err)
		assert.Equal(t, want, got, role)
	}
}

func TestAssembleMedia(t *testing.T) {
	a, _ := newTestAssembler(t)
	req := testRequest()
	req.MediaName = "hero.png"
	req.Media = []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3, 4, 5}

	tree, err := a.Assemble(context.Background(), req)
	require.NoError(t, err)
	defer tree.Remove()

	saved, err := os.ReadFile(filepath.Join(tree.Root, "website", "media", "media.png"))
	require.NoError(t, err)
	assert.Equal(t, req.Media, saved)

	page, err := os.ReadFile(filepath.Join(tree.Root, "website", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "media/media.png")
}

func TestAssembleZeroByteMedia(t *testing.T) {
	a, _ := newTestAssembler(t)
	req := testRequest()
	req.MediaName = "hero.gif"
	req.Media = []byte{}

	tree, err := a.Assemble(context.Background(), req)
	require.NoError(t, err)
	defer tree.Remove()

	info, err := os.Stat(filepath.Join(tree.Root, "website", "media", "media.gif"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestAssembleUniqueTrees(t *testing.T) {
	a, _ := newTestAssembler(t)

	first, err := a.Assemble(context.Background(), testRequest())
	require.NoError(t, err)
	defer first.Remove()
	second, err := a.Assemble(context.Background(), testRequest())
	require.NoError(t, err)
	defer second.Remove()

	assert.NotEqual(t, first.Root, second.Root)
	assert.Len(t, first.Token, 8)
}

func TestPreviewTouchesNoFiles(t *testing.T) {
	a, workDir := newTestAssembler(t)

	page, err := a.Preview(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Contains(t, page, "NPEPE")
	assert.Contains(t, page, "GENERATION_DISABLED")

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMediaPath(t *testing.T) {
	assert.Equal(t, "", mediaPath(""))
	assert.Equal(t, "media/media.png", mediaPath("hero.png"))
	assert.Equal(t, "media/media", mediaPath("hero"))
}
