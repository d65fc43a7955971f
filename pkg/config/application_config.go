package config

import (
	"fmt"

	"github.com/nspcc-dev/nbt-go/pkg/compress"
	"github.com/nspcc-dev/nbt-go/pkg/nbt"
	"github.com/nspcc-dev/nbt-go/pkg/storage/dbconfig"
	"github.com/nspcc-dev/nbt-go/pkg/tagstore"
)

// ApplicationConfiguration config specific to the tool.
type ApplicationConfiguration struct {
	Logger `yaml:",inline"`

	Codec           Codec                    `yaml:"Codec"`
	DBConfiguration dbconfig.DBConfiguration `yaml:"DBConfiguration"`
	// CacheSize is the number of decoded trees cached by the tag store.
	CacheSize int `yaml:"CacheSize"`
}

// Codec contains decoder limits and the compression used for output.
type Codec struct {
	// MaxDepth limits List/Compound nesting, zero means nbt.DefaultMaxDepth.
	MaxDepth int `yaml:"MaxDepth"`
	// MaxArrayLen limits the number of elements in arrays and lists.
	MaxArrayLen int `yaml:"MaxArrayLen"`
	// Compression is the wrapper for written files and stored values:
	// none, gzip, zlib, lz4 or zstd.
	Compression string `yaml:"Compression"`
}

// Limits returns decoder limits.
func (c Codec) Limits() nbt.Limits {
	return nbt.Limits{
		MaxDepth:    c.MaxDepth,
		MaxArrayLen: c.MaxArrayLen,
	}
}

// CompressionType returns parsed Compression value.
func (c Codec) CompressionType() (compress.Type, error) {
	return compress.FromString(c.Compression)
}

// TagStoreConfig returns tagstore configuration.
func (a ApplicationConfiguration) TagStoreConfig() (tagstore.Config, error) {
	t, err := a.Codec.CompressionType()
	if err != nil {
		return tagstore.Config{}, err
	}
	return tagstore.Config{
		CacheSize:   a.CacheSize,
		Compression: t,
		Limits:      a.Codec.Limits(),
	}, nil
}

// Validate checks ApplicationConfiguration for internal consistency and returns
// an error if any invalid settings are found.
func (a ApplicationConfiguration) Validate() error {
	if err := a.Logger.Validate(); err != nil {
		return fmt.Errorf("invalid logger config: %w", err)
	}
	if a.Codec.MaxDepth < 0 {
		return fmt.Errorf("negative MaxDepth: %d", a.Codec.MaxDepth)
	}
	if a.Codec.MaxArrayLen < 0 {
		return fmt.Errorf("negative MaxArrayLen: %d", a.Codec.MaxArrayLen)
	}
	if _, err := a.Codec.CompressionType(); err != nil {
		return fmt.Errorf("invalid Codec: %w", err)
	}
	switch a.DBConfiguration.Type {
	case dbconfig.InMemoryDB, dbconfig.BoltDB, dbconfig.LevelDB, "":
	default:
		return fmt.Errorf("unknown DB type: %s", a.DBConfiguration.Type)
	}
	return nil
}
