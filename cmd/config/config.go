package config

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// LoadFile parse the config from the file of the path
func LoadFile(path string, v interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	return LoadReader(file, v)
}

// LoadString parse the config from the string
func LoadString(data string, v interface{}) error {
	md, err := toml.Decode(data, v)
	if err != nil {
		return errors.WithStack(err)
	}
	return checkUndecoded(md)
}

// LoadReader parse the config from the reader, keys not in v are rejected
func LoadReader(r io.Reader, v interface{}) error {
	md, err := toml.NewDecoder(r).Decode(v)
	if err != nil {
		return errors.WithStack(err)
	}
	return checkUndecoded(md)
}

func checkUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		return errors.Wrapf(ErrUnknownKey, "%v", keys)
	}
	return nil
}

// Write encodes v as toml into w
func Write(w io.Writer, v interface{}) error {
	return errors.WithStack(toml.NewEncoder(w).Encode(v))
}
