package loganomaly

// Mode selects which pipeline analyzes a file (§2).
type Mode int

const (
	ModeBytePattern Mode = iota
	ModeStructured
)

func (m Mode) String() string {
	if m == ModeStructured {
		return "structured"
	}
	return "byte-pattern"
}

// modeSampleSize bounds how many non-blank records DetectMode inspects.
const modeSampleSize = 64

// modeStructuredRate is the minimum fraction of sampled records that must
// "look structured" before DetectMode commits to structured mode.
const modeStructuredRate = 0.9

// DetectMode is the mode selector of §2: the core exposes both pipelines, but
// a caller (the CLI) needs a default when --structured isn't given. It
// samples up to modeSampleSize non-blank records; if at least
// modeStructuredRate of them start (after trimming JSON whitespace) with '{'
// or '[', and at least one of the sampled records actually parses as JSON,
// structured mode is selected. Otherwise byte-pattern mode is selected.
func DetectMode(buf []byte, records RecordOffsets, forceStructured bool) Mode {
	if forceStructured {
		return ModeStructured
	}

	sampled, structuredLike := 0, 0
	anyParsed := false

	for i := 0; i < records.Len() && sampled < modeSampleSize; i++ {
		s, e := records.Range(i)
		rec := buf[s:e]
		trimmed := trimJSONSpace(rec)
		if len(trimmed) == 0 {
			continue
		}
		sampled++

		if trimmed[0] == '{' || trimmed[0] == '[' {
			structuredLike++
			if !anyParsed {
				if parsed := parseOneRecord(i, rec); parsed.Err == nil {
					anyParsed = true
				}
			}
		}
	}

	if sampled == 0 || !anyParsed {
		return ModeBytePattern
	}
	if float64(structuredLike)/float64(sampled) >= modeStructuredRate {
		return ModeStructured
	}
	return ModeBytePattern
}
