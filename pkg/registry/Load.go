// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package registry

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadFile reads the source registry from a configuration file. The format
// is whatever viper recognizes from the file extension; the reference
// configuration uses YAML.
func LoadFile(path string) (*Registry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading configuration file %q: %w", path, err)
	}
	return Load(v)
}

// Load decodes and validates a registry from an already-populated viper.
func Load(v *viper.Viper) (*Registry, error) {
	r := &Registry{}
	if err := v.Unmarshal(r); err != nil {
		return nil, fmt.Errorf("error decoding configuration: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
