// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Revision is a snapshot of the interpreter library's version information.
type Revision struct {
	Product      string `json:"product" yaml:"product"`
	Copyright    string `json:"copyright" yaml:"copyright"`
	Revision     int    `json:"revision" yaml:"revision"`
	RevisionDate int    `json:"revision_date" yaml:"revision_date"`
}

// Version formats the integer revision the way the interpreter prints it,
// e.g. 10030 -> "10.03.0".
func (r Revision) Version() string {
	return fmt.Sprintf("%d.%02d.%d", r.Revision/1000, (r.Revision%1000)/10, r.Revision%10)
}

func (r Revision) String() string {
	return fmt.Sprintf("%s %s (%d)", r.Product, r.Version(), r.RevisionDate)
}
