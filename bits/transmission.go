package bits

import "encoding/json"

// Transmission is one decoded frame together with the figures derived
// from its packet tree.
type Transmission struct {
	Hex             string `json:"hex"`
	Checksum        uint16 `json:"checksum"`
	VersionChecksum uint64 `json:"versionChecksum"`
	Value           uint64 `json:"value"`
	Packet          Packet `json:"packet"`
}

func (t *Transmission) String() string {
	v, _ := json.Marshal(t)

	return string(v)
}

func (t *Transmission) StringPretty() string {
	v, _ := json.MarshalIndent(t, "", "  ")

	return string(v)
}
