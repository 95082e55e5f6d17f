package addr

import (
	"net"
	"strings"

	"github.com/pkg/errors"
)

// ProtoAddress is a combination of network type and address, e.g. `tcp://127.0.0.1:8047` or
// `unix:///run/base47.sock`.
type ProtoAddress struct {
	Network string `json:"network"`
	Address string `json:"address"`
}

// String will combine the network with address in format <network>://<address>
func (p ProtoAddress) String() string {
	return p.Network + "://" + p.Address
}

// ParseAddress does the reverse of ProtoAddress.String -- it will take a string and convert it
// an address. An address without the network part is treated as a TCP address.
func ParseAddress(a string) (ProtoAddress, error) {
	a = strings.TrimSpace(a)
	if a == "" {
		return ProtoAddress{}, errors.Errorf("Empty address")
	}

	parts := strings.SplitN(a, "://", 2)
	if len(parts) != 2 {
		return ProtoAddress{Network: "tcp", Address: a}, nil
	}

	switch parts[0] {
	case "tcp", "tcp4", "tcp6", "unix":
	default:
		return ProtoAddress{}, errors.Errorf("Unsupported network %q in address %v", parts[0], a)
	}

	return ProtoAddress{
		Network: parts[0], Address: parts[1],
	}, nil
}

// UnmarshalFlag lets go-flags parse the address from the command line
func (p *ProtoAddress) UnmarshalFlag(value string) error {
	res, err := ParseAddress(value)
	if err != nil {
		return err
	}
	*p = res
	return nil
}

// UnmarshalText is used when the address is read from a configuration file
func (p *ProtoAddress) UnmarshalText(text []byte) error {
	return p.UnmarshalFlag(string(text))
}

// Listen opens a listener on this address
func (p ProtoAddress) Listen() (net.Listener, error) {
	ln, err := net.Listen(p.Network, p.Address)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not listen on %v", p)
	}
	return ln, nil
}

// MustParseAddress is like ParseAddress but panics on error
func MustParseAddress(a string) ProtoAddress {
	res, err := ParseAddress(a)
	if err != nil {
		panic(err)
	}
	return res
}

// UnmarshalYAML reads the address from a YAML scalar
func (p *ProtoAddress) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return p.UnmarshalFlag(s)
}
