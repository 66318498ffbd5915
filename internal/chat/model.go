package chat

// Gemini and Veo model IDs used by the studio.
//
// | Tier      | Default model                 | Used for                              |
// |-----------|-------------------------------|---------------------------------------|
// | Reasoning | gemini-3-pro-preview          | voice, briefing, suggestions, chat    |
// | Fast      | gemini-3-flash-preview        | activity summaries                    |
// | Local     | gemini-2.5-flash              | trends biased to GPS coordinates      |
// | Translate | gemini-3-flash-preview        | plain-text translation                |
// | Image     | gemini-2.5-flash-image        | square posters                        |
// | Video     | veo-3.1-fast-generate-preview | cinematic clips                       |
const (
	ModelGemini3ProPreview   = "gemini-3-pro-preview"
	ModelGemini3FlashPreview = "gemini-3-flash-preview"
	ModelGemini25Flash       = "gemini-2.5-flash"
	ModelGemini25FlashImage  = "gemini-2.5-flash-image"
	ModelVeo31FastPreview    = "veo-3.1-fast-generate-preview"
)

// ModelPolicy maps each capability tier to a model ID. Its fields mirror
// config.Models so a loaded configuration converts directly.
type ModelPolicy struct {
	Reasoning string
	Fast      string
	Local     string
	Translate string
	Image     string
	Video     string
}

// DefaultModelPolicy returns the built-in tier assignment.
func DefaultModelPolicy() ModelPolicy {
	return ModelPolicy{
		Reasoning: ModelGemini3ProPreview,
		Fast:      ModelGemini3FlashPreview,
		Local:     ModelGemini25Flash,
		Translate: ModelGemini3FlashPreview,
		Image:     ModelGemini25FlashImage,
		Video:     ModelVeo31FastPreview,
	}
}

// Merge fills blank tiers in p from fallback.
func (p ModelPolicy) Merge(fallback ModelPolicy) ModelPolicy {
	pick := func(v, def string) string {
		if v != "" {
			return v
		}
		return def
	}
	return ModelPolicy{
		Reasoning: pick(p.Reasoning, fallback.Reasoning),
		Fast:      pick(p.Fast, fallback.Fast),
		Local:     pick(p.Local, fallback.Local),
		Translate: pick(p.Translate, fallback.Translate),
		Image:     pick(p.Image, fallback.Image),
		Video:     pick(p.Video, fallback.Video),
	}
}

// orDefault completes a possibly zero policy.
func (p ModelPolicy) orDefault() ModelPolicy {
	return p.Merge(DefaultModelPolicy())
}
