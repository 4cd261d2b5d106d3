package cmd

import (
	"github.com/etnz/payments/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the pay command line for shell completion.
func Completion() *complete.Command {
	logs := predict.Or(predict.Files("*.csv"), predict.Set{"-"})
	engine := map[string]complete.Predictor{
		"on-error": predict.Set{"continue", "abort"},
		"owner":    predict.Nothing,
	}
	with := func(flags map[string]complete.Predictor) map[string]complete.Predictor {
		for k, v := range engine {
			flags[k] = v
		}
		return flags
	}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"process": {
				Flags: with(map[string]complete.Predictor{"format": predict.Set{"csv", "jsonl"}}),
				Args:  logs,
			},
			"summary": {
				Flags: with(map[string]complete.Predictor{"currency": predict.Something}),
				Args:  logs,
			},
			"accounts": {
				Flags: with(map[string]complete.Predictor{"q": predict.Something}),
				Args:  logs,
			},
			"ledger": {Flags: with(map[string]complete.Predictor{}), Args: logs},
			"check":  {Args: logs},
			"topic": {
				Flags: map[string]complete.Predictor{"l": predict.Nothing},
				Args:  predict.Set(topics),
			},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"v":      predict.Nothing,
			"plain":  predict.Nothing,
		},
		Args: logs,
	}
}
