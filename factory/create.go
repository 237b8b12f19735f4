package factory

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	sfcommon "github.com/tranvictor/schoolfactory/common"
	"github.com/tranvictor/schoolfactory/contracts/schoolfactory"
)

// CreateSchoolSystemData encodes a createSchoolSystem call. Name and symbol
// are sent exactly as given but must not be blank.
func (f *SchoolFactory) CreateSchoolSystemData(name, symbol string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(symbol) == "" {
		return nil, ErrEmptySymbol
	}
	return schoolfactory.PackCreateSchoolSystem(name, symbol)
}

func (f *SchoolFactory) schoolSystemFromLog(l types.Log) (sfcommon.SchoolSystem, error) {
	ev, err := schoolfactory.ParseSchoolSystemDeployed(l)
	if err != nil {
		return sfcommon.SchoolSystem{}, err
	}
	return sfcommon.SchoolSystem{
		Address:     ev.SchoolSystem,
		Owner:       ev.Owner,
		BlockNumber: l.BlockNumber,
		TxHash:      l.TxHash,
		LogIndex:    l.Index,
	}, nil
}

// SchoolSystemsFromReceipt decodes every SchoolSystemDeployed log the
// factory emitted in receipt. Logs from other contracts are ignored.
func (f *SchoolFactory) SchoolSystemsFromReceipt(receipt *types.Receipt) ([]sfcommon.SchoolSystem, error) {
	if receipt == nil {
		return nil, fmt.Errorf("nil receipt")
	}
	factory := common.HexToAddress(f.Address)
	result := []sfcommon.SchoolSystem{}
	for _, l := range receipt.Logs {
		if l == nil || l.Address != factory || !schoolfactory.IsSchoolSystemDeployed(*l) {
			continue
		}
		s, err := f.schoolSystemFromLog(*l)
		if err != nil {
			return nil, fmt.Errorf("log %d of tx %s: %w", l.Index, l.TxHash.Hex(), err)
		}
		result = append(result, s)
	}
	return result, nil
}
