package embedded

import (
	_ "embed"
)

// Embed the fixed prompt rule blocks

//go:embed data/blocks/persona.txt
var PersonaTxt []byte

//go:embed data/blocks/reference_sanitization.txt
var ReferenceSanitizationTxt []byte

//go:embed data/blocks/voice_fingerprint.txt
var VoiceFingerprintTxt []byte

//go:embed data/blocks/output_lyrics.txt
var OutputLyricsTxt []byte

//go:embed data/blocks/output_coach.txt
var OutputCoachTxt []byte
