package bleve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/mapping"
	"github.com/ethereum/go-ethereum/common"

	sfcommon "github.com/tranvictor/schoolfactory/common"
	"github.com/tranvictor/schoolfactory/util/logger"
)

const BATCH_SIZE = 1000

var (
	BLEVE_PATH = filepath.Join(homeDir(), ".schoolfactory", "schools.bleve")

	defaultIndex *SchoolIndex
	defaultErr   error
	once         sync.Once
)

func homeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return dir
}

// schoolDoc is the indexed form of a school system. Ids are lower cased
// addresses so indexing the same school twice updates it.
type schoolDoc struct {
	Address     string  `json:"address"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Owner       string  `json:"owner"`
	Network     string  `json:"network"`
	BlockNumber float64 `json:"block_number"`
	TxHash      string  `json:"tx_hash"`
}

type Hit struct {
	sfcommon.SchoolSystem
	Network string  `json:"network"`
	Score   float64 `json:"score"`
}

type SchoolIndex struct {
	index bleve.Index
	path  string
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name

	keywordFieldMapping := bleve.NewTextFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name
	keywordFieldMapping.IncludeInAll = false

	numericFieldMapping := bleve.NewNumericFieldMapping()
	numericFieldMapping.IncludeInAll = false

	schoolMapping := bleve.NewDocumentMapping()
	schoolMapping.AddFieldMappingsAt("address", textFieldMapping)
	schoolMapping.AddFieldMappingsAt("name", textFieldMapping)
	schoolMapping.AddFieldMappingsAt("symbol", textFieldMapping)
	schoolMapping.AddFieldMappingsAt("owner", textFieldMapping)
	schoolMapping.AddFieldMappingsAt("network", keywordFieldMapping)
	schoolMapping.AddFieldMappingsAt("tx_hash", keywordFieldMapping)
	schoolMapping.AddFieldMappingsAt("block_number", numericFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = schoolMapping
	indexMapping.DefaultAnalyzer = standard.Name
	return indexMapping
}

// Open opens the index at path, creating it when it does not exist yet.
func Open(path string) (*SchoolIndex, error) {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		index, err = bleve.New(path, buildIndexMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("opening school index %s: %w", path, err)
	}
	return &SchoolIndex{index: index, path: path}, nil
}

// Default returns the process wide index at BLEVE_PATH. bleve holds an
// exclusive lock on the files, so it is opened once.
func Default() (*SchoolIndex, error) {
	once.Do(func() {
		defaultIndex, defaultErr = Open(BLEVE_PATH)
	})
	return defaultIndex, defaultErr
}

func (si *SchoolIndex) Path() string {
	return si.path
}

func (si *SchoolIndex) Close() error {
	return si.index.Close()
}

func (si *SchoolIndex) Count() (uint64, error) {
	return si.index.DocCount()
}

// Index adds or updates schools in batches of BATCH_SIZE.
func (si *SchoolIndex) Index(network string, schools []sfcommon.SchoolSystem) error {
	startTime := time.Now()
	batch := si.index.NewBatch()
	for _, s := range schools {
		doc := schoolDoc{
			Address:     s.Address.Hex(),
			Name:        s.Name,
			Symbol:      s.Symbol,
			Owner:       s.Owner.Hex(),
			Network:     network,
			BlockNumber: float64(s.BlockNumber),
			TxHash:      s.TxHash.Hex(),
		}
		if err := batch.Index(strings.ToLower(doc.Address), doc); err != nil {
			return err
		}
		if batch.Size() >= BATCH_SIZE {
			if err := si.index.Batch(batch); err != nil {
				return err
			}
			batch = si.index.NewBatch()
		}
	}
	// flush the last batch
	if batch.Size() > 0 {
		if err := si.index.Batch(batch); err != nil {
			return err
		}
	}
	logger.L().Debugw("indexed school systems", "count", len(schools), "took", time.Since(startTime))
	return nil
}

func stringField(fields map[string]interface{}, name string) string {
	s, _ := fields[name].(string)
	return s
}

// Search matches input as a phrase or, one edit away, as a single term.
// Hits come best first.
func (si *SchoolIndex) Search(input string, limit int) ([]Hit, error) {
	matchQuery := bleve.NewMatchPhraseQuery(input)
	fuzzyQuery := bleve.NewFuzzyQuery(strings.ToLower(input))
	fuzzyQuery.Fuzziness = 1
	query := bleve.NewDisjunctionQuery(matchQuery, fuzzyQuery)
	request := bleve.NewSearchRequestOptions(query, limit, 0, false)
	request.Fields = []string{"*"}
	searchResults, err := si.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("school index search failed: %w", err)
	}

	results := []Hit{}
	for _, h := range searchResults.Hits {
		blockNumber, _ := h.Fields["block_number"].(float64)
		results = append(results, Hit{
			SchoolSystem: sfcommon.SchoolSystem{
				Address:     common.HexToAddress(stringField(h.Fields, "address")),
				Owner:       common.HexToAddress(stringField(h.Fields, "owner")),
				Name:        stringField(h.Fields, "name"),
				Symbol:      stringField(h.Fields, "symbol"),
				BlockNumber: uint64(blockNumber),
				TxHash:      common.HexToHash(stringField(h.Fields, "tx_hash")),
			},
			Network: stringField(h.Fields, "network"),
			Score:   h.Score,
		})
	}
	return results, nil
}
