package extract

import "fmt"

// StructuralError reports markup that no longer matches the layout the
// selectors were written against. It is fatal for the crawl: writing rows
// extracted from an unrecognized layout would corrupt the aggregation.
type StructuralError struct {
	Capability string
	URL        string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("detail pane at %s is missing %s", e.URL, e.Capability)
}
