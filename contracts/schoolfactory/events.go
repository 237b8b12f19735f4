package schoolfactory

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrNotSchoolSystemDeployed = errors.New("log is not a SchoolSystemDeployed event")
	ErrMalformedLog            = errors.New("malformed SchoolSystemDeployed log")
)

// SchoolSystemDeployed is emitted once per createSchoolSystem call.
type SchoolSystemDeployed struct {
	SchoolSystem common.Address
	Owner        common.Address
	Raw          types.Log
}

func SchoolSystemDeployedTopic() common.Hash {
	e, _ := Lookup(EventSchoolSystemDeployed)
	return e.Topic()
}

func IsSchoolSystemDeployed(l types.Log) bool {
	return len(l.Topics) > 0 && l.Topics[0] == SchoolSystemDeployedTopic()
}

// ParseSchoolSystemDeployed decodes both indexed addresses from the log
// topics. The event has no data section.
func ParseSchoolSystemDeployed(l types.Log) (*SchoolSystemDeployed, error) {
	if !IsSchoolSystemDeployed(l) {
		return nil, ErrNotSchoolSystemDeployed
	}
	if len(l.Topics) != 3 {
		return nil, fmt.Errorf("%w: expected 3 topics, got %d", ErrMalformedLog, len(l.Topics))
	}
	if len(l.Data) != 0 {
		return nil, fmt.Errorf("%w: unexpected %d data bytes", ErrMalformedLog, len(l.Data))
	}
	a, err := shared()
	if err != nil {
		return nil, err
	}
	var indexed abi.Arguments
	for _, arg := range a.Events[EventSchoolSystemDeployed].Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	result := &SchoolSystemDeployed{Raw: l}
	if err := abi.ParseTopics(result, indexed, l.Topics[1:]); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedLog, err)
	}
	return result, nil
}
