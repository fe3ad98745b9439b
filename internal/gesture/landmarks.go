package gesture

// Hand landmark indices following the MediaPipe hand model.
const (
	Wrist        = 0
	ThumbMCP     = 2
	ThumbTip     = 4
	IndexPIP     = 6
	IndexTip     = 8
	MiddlePIP    = 10
	MiddleTip    = 12
	RingPIP      = 14
	RingTip      = 16
	PinkyPIP     = 18
	PinkyTip     = 20
	NumLandmarks = 21
)

// ThumbValue is what a raised thumb is worth on its own
const ThumbValue = 6

// Point3D is a normalised image-space point. Y grows downwards.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks is one detected hand skeleton
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness,omitempty"`
	Score      float64               `json:"score,omitempty"`
}

var fingerJoints = [...]struct{ tip, pip int }{
	{IndexTip, IndexPIP},
	{MiddleTip, MiddlePIP},
	{RingTip, RingPIP},
	{PinkyTip, PinkyPIP},
}

// FingerCount maps a hand skeleton to a hand-cricket number.
//
// Each of the four fingers whose tip sits above its PIP joint counts one.
// A thumb raised above its MCP joint and above the index, middle and ring
// tips counts six. The total is clamped to 1–6, so a closed fist plays one
// and a thumb with any finger plays six.
func FingerCount(h HandLandmarks) int {
	p := h.Points
	count := 0

	thumb := p[ThumbTip].Y
	if thumb < p[ThumbMCP].Y && thumb < p[IndexTip].Y && thumb < p[MiddleTip].Y && thumb < p[RingTip].Y {
		count += ThumbValue
	}

	for _, f := range fingerJoints {
		if p[f.tip].Y < p[f.pip].Y {
			count++
		}
	}

	return min(max(count, MinCount), MaxCount)
}

// Reading converts the skeleton into a gesture reading
func (h HandLandmarks) Reading() Reading {
	return Reading{
		Count:      FingerCount(h),
		Handedness: h.Handedness,
		Confidence: h.Score,
	}
}

// FirstReading returns the reading for the first detected hand, or nil when
// no hands were detected.
func FirstReading(hands []HandLandmarks) *Reading {
	if len(hands) == 0 {
		return nil
	}
	r := hands[0].Reading()
	return &r
}
