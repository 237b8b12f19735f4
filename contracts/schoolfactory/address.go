// Package schoolfactory describes the deployed SchoolFactory contract: its
// address and the callable surface (functions and events) needed to encode
// calls against it and decode what it returns and emits.
//
// Everything exported here is constant data or a pure function over it.
// Nothing in this package talks to a node; see package factory for that.
package schoolfactory

import (
	"github.com/ethereum/go-ethereum/common"
)

// Address is the checksum-cased address of the deployed factory.
const Address = "0x7370f36B7eF398B9c5e840c768FA1794eA7cbC37"

// ContractAddress returns Address as a go-ethereum address.
func ContractAddress() common.Address {
	return common.HexToAddress(Address)
}
