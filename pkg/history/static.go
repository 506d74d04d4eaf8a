package history

import (
	"time"

	"github.com/r3d91ll/qmreport/pkg/metrics"
)

var (
	soloQScores  = metrics.Scores{Accuracy: 0.88, Precision: 0.975, Recall: 0.78, Specificity: 0.98, F1: 0.8666666667}
	qaoaScores   = metrics.Scores{Accuracy: 0.865, Precision: 0.9740259740, Recall: 0.75, Specificity: 0.98, F1: 0.8474576271}
	pulsarScores = metrics.Scores{Accuracy: 0.875, Precision: 0.9622641509, Recall: 0.796875, Specificity: 0.9642857143, F1: 0.8717948718}
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		panic(err)
	}
	return t
}

func soloQ(ts string) Record {
	return Record{Timestamp: at(ts), ModelType: "SoloQ", ModelFile: "final_SoloQ_model_.pkl", CSVFile: "test.csv", Result: soloQScores}
}

func qaoa(ts string) Record {
	return Record{Timestamp: at(ts), ModelType: "QAOA", ModelFile: "final_qaoa_model.pkl", CSVFile: "test.csv", Result: qaoaScores}
}

func staticRecords() []Record {
	return []Record{
		soloQ("2025-07-21T15:48:38.977Z"),
		soloQ("2025-07-21T15:50:39.749Z"),
		qaoa("2025-07-21T16:08:56.373Z"),
		soloQ("2025-07-22T11:34:10.790Z"),
		soloQ("2025-07-22T11:34:13.754Z"),
		soloQ("2025-07-25T10:57:20.210Z"),
		{
			Timestamp: at("2025-07-25T10:59:00.024Z"),
			ModelType: "SoloQ",
			ModelFile: "pulsar_SoloQ_model.pkl",
			CSVFile:   "pulsar_test_data.csv",
			Result:    pulsarScores,
		},
		soloQ("2025-08-14T12:56:27.794Z"),
		soloQ("2025-08-15T10:22:18.890Z"),
		qaoa("2025-08-15T10:23:19.250Z"),
		soloQ("2025-09-09T13:33:52.141Z"),
	}
}
