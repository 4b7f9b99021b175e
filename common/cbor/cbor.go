// Package cbor provides helpers for encoding and decoding canonical CBOR.
//
// Using this package will produce canonical encodings, so the same record
// always has the same serialization in the history store.
package cbor

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CfgDebugStrictCBOR enables CBOR round-trip enforcement.
const CfgDebugStrictCBOR = "debug.strict_cbor"

// Flags has the flags used by the CBOR wrapper.
var Flags = flag.NewFlagSet("", flag.ContinueOnError)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

// Marshal serializes a given type into a CBOR byte vector.
func Marshal(src interface{}) []byte {
	b, err := encMode.Marshal(src)
	if err != nil {
		panic("common/cbor: failed to marshal: " + err.Error())
	}
	return b
}

// Unmarshal deserializes a CBOR byte vector into a given type.
func Unmarshal(data []byte, dst interface{}) error {
	if data == nil {
		return nil
	}

	if err := decMode.Unmarshal(data, dst); err != nil {
		return err
	}

	// If we are running with the strict CBOR debug option, ensure that
	// the structure round-trips.
	if viper.GetBool(CfgDebugStrictCBOR) {
		reencoded := Marshal(dst)
		if !bytes.Equal(data, reencoded) {
			return fmt.Errorf(
				"common/cbor: encoded %T does not round-trip (expected: %s, actual: %s)",
				dst,
				hex.EncodeToString(data),
				hex.EncodeToString(reencoded),
			)
		}
	}

	return nil
}

func init() {
	var err error
	if encMode, err = cbor.CanonicalEncOptions().EncMode(); err != nil {
		panic("common/cbor: failed to create encoder: " + err.Error())
	}
	decOptions := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	if decMode, err = decOptions.DecMode(); err != nil {
		panic("common/cbor: failed to create decoder: " + err.Error())
	}

	Flags.Bool(CfgDebugStrictCBOR, false, "(DEBUG) Enforce that CBOR blobs roundtrip")
	_ = Flags.MarkHidden(CfgDebugStrictCBOR)

	_ = viper.BindPFlags(Flags)
}
