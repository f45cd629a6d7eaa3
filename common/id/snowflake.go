package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node. Each process uses a distinct node ID
// (server=1, worker=2) so IDs stay unique across instances.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a time-ordered, globally unique int64 ID.
func New() int64 {
	return node.Generate().Int64()
}
