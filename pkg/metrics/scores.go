package metrics

// Scores are the classification scores of one model run, as fractions in
// [0,1].
type Scores struct {
	Accuracy    float64 `json:"accuracy" yaml:"accuracy"`
	Precision   float64 `json:"precision" yaml:"precision"`
	Recall      float64 `json:"recall" yaml:"recall"`
	Specificity float64 `json:"specificity" yaml:"specificity"`
	F1          float64 `json:"f1_score" yaml:"f1_score"`
}

// ScoreNames is the display order of the score metrics.
var ScoreNames = []string{"Accuracy", "Precision", "Recall", "Specificity", "F1 Score"}

// Values returns the fractions in ScoreNames order.
func (s Scores) Values() []float64 {
	return []float64{s.Accuracy, s.Precision, s.Recall, s.Specificity, s.F1}
}

// Records converts the scores to percentage records. A nil threshold leaves
// every record unbanded.
func (s Scores) Records(th *Threshold) []Record {
	vals := s.Values()
	out := make([]Record, len(vals))
	for i, v := range vals {
		out[i] = Record{Name: ScoreNames[i], Value: v * 100}
		if th != nil {
			t := *th
			out[i].Threshold = &t
		}
	}
	return out
}

// Mean averages a set of scores. An empty set yields zero scores.
func Mean(all []Scores) Scores {
	if len(all) == 0 {
		return Scores{}
	}
	var m Scores
	for _, s := range all {
		m.Accuracy += s.Accuracy
		m.Precision += s.Precision
		m.Recall += s.Recall
		m.Specificity += s.Specificity
		m.F1 += s.F1
	}
	n := float64(len(all))
	return Scores{
		Accuracy:    m.Accuracy / n,
		Precision:   m.Precision / n,
		Recall:      m.Recall / n,
		Specificity: m.Specificity / n,
		F1:          m.F1 / n,
	}
}

// DefaultThreshold is the banding applied to mock evaluation results.
func DefaultThreshold() *Threshold {
	return &Threshold{Good: 90, Warning: 70}
}
