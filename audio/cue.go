package audio

// Cue identifies a short interface sound
type Cue int

const (
	CueNone    Cue = iota
	CuePing        // Dot selected
	CueChime       // Label selected
	CueRefresh     // Dataset refreshed
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CuePing:
		return "ping"
	case CueChime:
		return "chime"
	case CueRefresh:
		return "refresh"
	}
	return "none"
}
