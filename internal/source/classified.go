package source

import (
	"github.com/TimelordUK/emrlog/pkg/logformat"
)

// ClassifiedReader reads line by line and tags each line by kind.
// Blank lines are counted in Records but left out of Lines.
type ClassifiedReader struct {
	classifier *logformat.Classifier
}

// NewClassifiedReader creates a classifying reader
func NewClassifiedReader(classifier *logformat.Classifier) *ClassifiedReader {
	return &ClassifiedReader{classifier: classifier}
}

// Name returns the strategy name
func (r *ClassifiedReader) Name() string {
	return "classified"
}

// Read streams src through the classifier
func (r *ClassifiedReader) Read(src LogSource) (*Result, error) {
	res := &Result{Source: src}
	err := streamFile(src, res, func(line Line) error {
		res.Records++
		line.Kind = r.classifier.Classify(line.Text)
		if line.Kind == logformat.KindBlank {
			return nil
		}
		res.Lines = append(res.Lines, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CountKinds tallies the kinds of the lines in res
func CountKinds(res *Result) map[logformat.Kind]int {
	counts := make(map[logformat.Kind]int)
	for _, line := range res.Lines {
		counts[line.Kind]++
	}
	return counts
}
