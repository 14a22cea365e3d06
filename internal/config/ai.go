package config

import "os"

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Questions is for round-question generation (needs to be fast)
	Questions string `json:"questions"`

	// Future is for the final future-narrative synthesis
	Future string `json:"future"`

	// ImagePrompt is for compressing a narrative into a short image prompt
	ImagePrompt string `json:"imagePrompt"`

	// Vision is for multimodal calls (selfie description, image generation)
	Vision string `json:"vision"`
}

// AIConfig holds the generative-text provider configuration
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`
}

// DefaultAIConfig returns the default Gemini configuration
func DefaultAIConfig() *AIConfig {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	return &AIConfig{
		APIKey:  apiKey,
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			Questions:   getEnvOrDefault("GEMINI_MODEL_QUESTIONS", "gemini-2.5-flash"),
			Future:      getEnvOrDefault("GEMINI_MODEL_FUTURE", "gemini-2.5-flash"),
			ImagePrompt: getEnvOrDefault("GEMINI_MODEL_IMAGE_PROMPT", "gemini-2.5-flash"),
			Vision:      getEnvOrDefault("GEMINI_MODEL_VISION", "gemini-2.0-flash-exp"),
		},
		TimeoutMS: 10000, // 10 second default timeout
	}
}

// IsEnabled returns true if the text provider is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full generateContent endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

// ImageProvider selects which image backend to dispatch to
type ImageProvider string

const (
	ImageProviderGoogle ImageProvider = "google"
	ImageProviderOpenAI ImageProvider = "openai"
)

// ImageConfig holds the generative-image provider configuration
type ImageConfig struct {
	Provider  ImageProvider `json:"provider"`
	APIKey    string        `json:"-"`
	OpenAIURL string        `json:"openaiUrl"`
	TimeoutMS int           `json:"timeoutMs"`
}

// DefaultImageConfig returns image provider config from the environment.
// IMAGE_PROVIDER picks the backend; with no explicit choice, an IMAGE_API_KEY
// implies openai and a Gemini key implies google.
func DefaultImageConfig() *ImageConfig {
	key := os.Getenv("IMAGE_API_KEY")
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}

	provider := ImageProvider(os.Getenv("IMAGE_PROVIDER"))
	if provider == "" {
		if key != "" {
			provider = ImageProviderOpenAI
		} else {
			provider = ImageProviderGoogle
		}
	}

	return &ImageConfig{
		Provider:  provider,
		APIKey:    key,
		OpenAIURL: getEnvOrDefault("OPENAI_IMAGES_URL", "https://api.openai.com/v1/images/generations"),
		TimeoutMS: 30000,
	}
}

// TTSConfig holds the ElevenLabs speech-synthesis configuration
type TTSConfig struct {
	APIKey    string `json:"-"`
	BaseURL   string `json:"baseUrl"`
	VoiceID   string `json:"voiceId"`
	ModelID   string `json:"modelId"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultTTSConfig returns ElevenLabs config from the environment
func DefaultTTSConfig() *TTSConfig {
	return &TTSConfig{
		APIKey:  os.Getenv("ELEVENLABS_API_KEY"),
		BaseURL: getEnvOrDefault("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io/v1"),
		// ElevenLabs expects the voice ID here, not the display name.
		VoiceID:   getEnvOrDefault("ELEVENLABS_VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),
		ModelID:   getEnvOrDefault("ELEVENLABS_MODEL_ID", "eleven_multilingual_v2"),
		TimeoutMS: 30000,
	}
}

// IsEnabled returns true if the TTS provider is configured
func (c *TTSConfig) IsEnabled() bool {
	return c.APIKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
