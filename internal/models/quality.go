package models

import "strings"

// Quality represents the playback resolution of a video link
type Quality int

const (
	QualityUnknown Quality = iota
	Quality360p
	Quality480p
	Quality720p
	Quality1080p
	Quality2160p // 4K
)

// QualityFromID maps the numeric id of an Akwam quality tab (tab-2 .. tab-6) to a Quality.
// Tab 2 has never been seen with a label on the site; 360p is extrapolated.
func QualityFromID(id int) Quality {
	switch id {
	case 2:
		return Quality360p
	case 3:
		return Quality480p
	case 4:
		return Quality720p
	case 5:
		return Quality1080p
	case 6:
		return Quality2160p
	default:
		return QualityUnknown
	}
}

// String returns the string representation of the quality
func (q Quality) String() string {
	switch q {
	case Quality360p:
		return "360p"
	case Quality480p:
		return "480p"
	case Quality720p:
		return "720p"
	case Quality1080p:
		return "1080p"
	case Quality2160p:
		return "2160p"
	default:
		return "unknown"
	}
}

// Height returns the vertical resolution in pixels, or 0 when unknown
func (q Quality) Height() int {
	switch q {
	case Quality360p:
		return 360
	case Quality480p:
		return 480
	case Quality720p:
		return 720
	case Quality1080p:
		return 1080
	case Quality2160p:
		return 2160
	default:
		return 0
	}
}

// ParseQuality converts a quality string to Quality enum
func ParseQuality(qualityStr string) Quality {
	switch strings.ToLower(qualityStr) {
	case "360p":
		return Quality360p
	case "480p":
		return Quality480p
	case "720p":
		return Quality720p
	case "1080p":
		return Quality1080p
	case "2160p", "4k":
		return Quality2160p
	default:
		return QualityUnknown
	}
}

// MarshalJSON implements json.Marshaler interface
func (q Quality) MarshalJSON() ([]byte, error) {
	return []byte(`"` + q.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (q *Quality) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	*q = ParseQuality(str)
	return nil
}
