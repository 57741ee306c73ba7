package models

const (
	SourceComment = "comment"
	SourcePost    = "post"

	// Unknown is the sentinel for traits that could not be determined.
	Unknown = "Unknown"

	ChunkSeparator = "\n---\n"

	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
	DefaultMaxChunks    = 50
	DefaultMaxChars     = 10000

	FallbackPersonalityNote = "Could not determine personality traits from the available data."
)

var (
	PersonaPromptTemplate = `You are an expert psychologist and personality analyzer. Analyze the following Reddit posts and comments to create a detailed persona.

INSTRUCTIONS:
1. Carefully analyze the user's writing style, opinions, interests, and behaviors
2. Extract key personality traits, habits, and preferences
3. Create a comprehensive persona based on the data
4. Format your response as a structured JSON object

REDDIT DATA:
{{.text_data}}

OUTPUT FORMAT:
{{.format_instructions}}
`

	ChatPromptTemplate = `SYSTEM: You are now roleplaying as a persona based on the following profile.
Respond to the user's message in character, maintaining the personality traits, speech patterns,
and knowledge that would be consistent with this persona. Be authentic and engaging.

PERSONA PROFILE:
{{.persona}}

USER MESSAGE: {{.message}}
`
)
