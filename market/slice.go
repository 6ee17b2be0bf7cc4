package market

import "fmt"

// Complete verifies that a slice contains a bar for every configured
// instrument. The aggregation collaborator must deliver whole slices; a
// missing instrument is a contract violation, not a retryable condition.
func (s Slice) Complete(instruments []string) error {
	for _, inst := range instruments {
		if _, ok := s[inst]; !ok {
			return fmt.Errorf("bar slice missing instrument %q", inst)
		}
	}
	return nil
}
