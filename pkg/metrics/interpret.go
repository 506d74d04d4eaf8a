package metrics

// Kind is the closed set of metric names with a dedicated interpretation.
type Kind int

const (
	KindOther Kind = iota
	KindAccuracy
	KindPrecision
	KindRecall
	KindF1
	KindLoss
)

// KindOf maps a display name to its kind. Matching is exact.
func KindOf(name string) Kind {
	switch name {
	case "Accuracy":
		return KindAccuracy
	case "Precision":
		return KindPrecision
	case "Recall":
		return KindRecall
	case "F1-Score", "F1 Score":
		return KindF1
	case "Loss":
		return KindLoss
	default:
		return KindOther
	}
}

// Interpret returns the short reading shown in the metrics table.
func Interpret(name string, value float64) string {
	switch KindOf(name) {
	case KindAccuracy:
		switch {
		case value > 90:
			return "Excellent"
		case value > 80:
			return "Good"
		case value > 70:
			return "Fair"
		default:
			return "Poor"
		}
	case KindPrecision:
		switch {
		case value > 85:
			return "High confidence"
		case value > 75:
			return "Moderate"
		default:
			return "Low confidence"
		}
	case KindRecall:
		switch {
		case value > 85:
			return "Comprehensive"
		case value > 75:
			return "Adequate"
		default:
			return "Limited"
		}
	case KindF1:
		switch {
		case value > 85:
			return "Well balanced"
		case value > 75:
			return "Acceptable"
		default:
			return "Imbalanced"
		}
	case KindLoss:
		switch {
		case value < 0.1:
			return "Excellent"
		case value < 0.3:
			return "Good"
		case value < 0.5:
			return "Fair"
		default:
			return "High error"
		}
	default:
		return "Standard range"
	}
}
