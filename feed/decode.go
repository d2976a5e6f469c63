package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/reverie-spectrum/spectrum"
	"github.com/lixenwraith/reverie-spectrum/vmath"
)

// ErrMalformed wraps JSON that does not have the expected shape
var ErrMalformed = errors.New("malformed dataset")

// labelNamespace derives stable IDs for records that carry no identifier
var labelNamespace = uuid.MustParse("6f1c9c1e-51d8-4a3f-9a57-7e2d0c5b8a31")

// Snapshot is one complete dataset
type Snapshot struct {
	Points    map[string]spectrum.PointInput
	Zones     []spectrum.Zone
	FetchedAt time.Time
}

type axesJSON struct {
	Entropy   float64 `json:"entropy"`
	Oblivion  float64 `json:"oblivion"`
	Liberty   float64 `json:"liberty"`
	Authority float64 `json:"authority"`
	Receptive float64 `json:"receptive"`
	Skeptic   float64 `json:"skeptic"`
}

func (a axesJSON) axes() spectrum.Axes {
	return spectrum.Axes{
		Entropy: a.Entropy, Oblivion: a.Oblivion,
		Liberty: a.Liberty, Authority: a.Authority,
		Receptive: a.Receptive, Skeptic: a.Skeptic,
	}
}

type pointJSON struct {
	DID      string   `json:"did"`
	Handle   string   `json:"handle"`
	Name     string   `json:"name"`
	Avatar   string   `json:"avatar"`
	Spectrum axesJSON `json:"spectrum"`
}

// label picks the display name, falling back through handle to identifier
func (p pointJSON) label() string {
	for _, s := range []string{p.Name, p.Handle, p.DID} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// id picks the identifier, deriving a name-based UUID when none is present
// derived is true for the name-based fallback, empty for a record with no identity
func (p pointJSON) id() (id string, derived bool) {
	if p.DID != "" {
		return p.DID, false
	}
	if p.Handle != "" {
		return p.Handle, false
	}
	label := p.label()
	if label == "" {
		return "", true
	}
	return uuid.NewSHA1(labelNamespace, []byte(label)).String(), true
}

// location is a zone coordinate given either as x/y/z or as six axis values
type location struct {
	vmath.Vec3
}

func (l *location) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range []string{"entropy", "oblivion", "liberty", "authority", "receptive", "skeptic"} {
		if _, ok := raw[k]; ok {
			a := spectrum.Axes{
				Entropy: raw["entropy"], Oblivion: raw["oblivion"],
				Liberty: raw["liberty"], Authority: raw["authority"],
				Receptive: raw["receptive"], Skeptic: raw["skeptic"],
			}
			l.Vec3 = a.Position()
			return nil
		}
	}
	l.Vec3 = vmath.Vec3{raw["x"], raw["y"], raw["z"]}
	return nil
}

type colorJSON struct {
	R uint8    `json:"r"`
	G uint8    `json:"g"`
	B uint8    `json:"b"`
	A *float64 `json:"a"`
}

func (c colorJSON) rgba() spectrum.RGBA {
	a := 0.25
	if c.A != nil {
		a = vmath.Clamp01(*c.A)
	}
	return spectrum.RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

type zoneJSON struct {
	Type   string     `json:"type"`
	Name   string     `json:"name"`
	Color  colorJSON  `json:"color"`
	Center location   `json:"center"`
	Radius float64    `json:"radius"`
	Points []location `json:"points"`
}

// DecodePoints parses a JSON array of dreamer records
// Records sharing an identifier collapse to the last one, records with no did,
// handle or name are skipped. Both are logged
func DecodePoints(data []byte, log logrus.FieldLogger) (map[string]spectrum.PointInput, error) {
	var recs []pointJSON
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: points: %v", ErrMalformed, err)
	}
	return pointsFrom(recs, log), nil
}

func pointsFrom(recs []pointJSON, log logrus.FieldLogger) map[string]spectrum.PointInput {
	out := make(map[string]spectrum.PointInput, len(recs))
	for i, r := range recs {
		id, derived := r.id()
		if id == "" {
			if log != nil {
				log.WithField("index", i).Warn("dreamer without identity skipped")
			}
			continue
		}
		if _, dup := out[id]; dup && log != nil {
			log.WithFields(logrus.Fields{"index": i, "id": id, "derived": derived}).Warn("duplicate dreamer id, last record wins")
		}
		out[id] = spectrum.PointInput{
			Label:  r.label(),
			Avatar: r.Avatar,
			Axes:   r.Spectrum.axes(),
		}
	}
	return out
}

// DecodeZones parses a JSON array of zone descriptors
// Unknown zone types are skipped and logged
func DecodeZones(data []byte, log logrus.FieldLogger) ([]spectrum.Zone, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var recs []zoneJSON
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: zones: %v", ErrMalformed, err)
	}
	return zonesFrom(recs, log), nil
}

func zonesFrom(recs []zoneJSON, log logrus.FieldLogger) []spectrum.Zone {
	out := make([]spectrum.Zone, 0, len(recs))
	for i, r := range recs {
		z := spectrum.Zone{Name: r.Name, Color: r.Color.rgba()}
		switch strings.ToLower(r.Type) {
		case "sphere":
			z.Kind = spectrum.ZoneSphere
			z.Center = r.Center.Vec3
			z.Radius = r.Radius
		case "hull":
			z.Kind = spectrum.ZoneHull
			z.Vertices = make([]vmath.Vec3, len(r.Points))
			for j, p := range r.Points {
				z.Vertices[j] = p.Vec3
			}
		default:
			if log != nil {
				log.WithFields(logrus.Fields{"index": i, "name": r.Name, "type": r.Type}).Warn("unknown zone type skipped")
			}
			continue
		}
		out = append(out, z)
	}
	return out
}

// document is the on-disk layout holding both halves of a dataset
type document struct {
	Dreamers []pointJSON `json:"dreamers"`
	Zones    []zoneJSON  `json:"zones"`
}

// DecodeDocument parses {"dreamers": [...], "zones": [...]}
func DecodeDocument(data []byte, log logrus.FieldLogger) (Snapshot, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: document: %v", ErrMalformed, err)
	}
	return Snapshot{
		Points:    pointsFrom(doc.Dreamers, log),
		Zones:     zonesFrom(doc.Zones, log),
		FetchedAt: time.Now(),
	}, nil
}
