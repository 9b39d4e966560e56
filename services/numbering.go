package services

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Document number prefixes
const (
	JobPrefix     = "JOB"
	QuotePrefix   = "QTE"
	InvoicePrefix = "INV"
)

// Numberer hands out human readable document numbers such as JOB-3J8QZK1V0W.
// Numbers are unique per node; NODE_ID must differ between running instances.
type Numberer struct {
	node *snowflake.Node
}

// NewNumberer creates a Numberer for the given snowflake node id (0-1023)
func NewNumberer(nodeID int64) (*Numberer, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &Numberer{node: node}, nil
}

// Next returns a fresh number with the given prefix
func (n *Numberer) Next(prefix string) string {
	return prefix + "-" + strings.ToUpper(n.node.Generate().Base36())
}
