package prompts

// SystemPrompt frames the assistant for every completion call.
func SystemPrompt() string {
	return "You are Grok: generate code-ready content for meme coin website & telegram bot."
}

// SiteCopyTask asks for the free-text website copy. The first line of the
// answer is used as the tagline.
func SiteCopyTask() string {
	return "generate website intro, tagline, roadmap (short) in plain text"
}

// BotRepliesTask asks for the structured reply sets. The caller parses the
// answer as JSON and falls back to a fixed default set when that fails.
func BotRepliesTask() string {
	return "generate arrays of bot short replies: GREET_NEW_MEMBERS, HYPE, WISDOM, SCHEDULED_BUY in JSON"
}
