package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/husonlab/dendroscope3-sub003/pkg/cache"
	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
)

// loadCorrespondence reads a map from taxa of the first network to taxa of
// the second. Files ending in .toml hold one key per taxon,
//
//	H1 = ["P1", "P2"]
//
// anything else is read as a JSON object of the same shape. The content
// hash is returned for the cache key.
func loadCorrespondence(path string) (map[string][]string, string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "correspondence file %s not found", path)
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}

	corr := make(map[string][]string)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &corr)
	} else {
		err = json.Unmarshal(data, &corr)
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse correspondence %s", path)
	}
	if len(corr) == 0 {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "correspondence %s links no taxa", path)
	}
	return corr, cache.Hash(data), nil
}
