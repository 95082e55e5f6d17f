package cert

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"io/ioutil"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/youmark/pkcs8"
)

// ServerConfig holds the certificate options of the demo server. When neither a certificate nor a private key is
// given the server talks plain HTTP.
type ServerConfig struct {
	Certificate               string  `json:"certificate"               long:"certificate"                  env:"CERTIFICATE"                  description:"Server certificate (PEM)"`
	CertificateFile           string  `json:"certificateFile"           long:"certificate-file"             env:"CERTIFICATE_FILE"             description:"File with the server certificate (PEM)"`
	PrivateKey                string  `json:"privateKey"                long:"private-key"                  env:"PRIVATE_KEY"                  description:"Server private key (PEM, optionally encrypted)"`
	PrivateKeyFile            string  `json:"privateKeyFile"            long:"private-key-file"             env:"PRIVATE_KEY_FILE"             description:"File with the server private key (PEM, optionally encrypted)"`
	PrivateKeyPassword        *string `json:"privateKeyPassword"        long:"private-key-password"         env:"PRIVATE_KEY_PASSWORD"         description:"Decryption password"`
	PrivateKeyPasswordProgram string  `json:"privateKeyPasswordProgram" long:"private-key-password-program" env:"PRIVATE_KEY_PASSWORD_PROGRAM" description:"Program to run to get the decryption password"`
	CaCertificateFile         string  `json:"caCertificateFile"         long:"ca-certificate-file"          env:"CA_CERTIFICATE_FILE"          description:"File with CA certificate(s) used to verify clients"`
	RequireClientCert         bool    `json:"requireClientCert"         long:"require-client-cert"          env:"REQUIRE_CLIENT_CERT"          description:"If set, the client must authenticate with its certificate."`
}

// pemOption returns the inline value if set, otherwise the content of the file.
func pemOption(value, file, what string) ([]byte, error) {
	if file != "" {
		data, err := ioutil.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read %s file: %s", what, file)
		}
		return data, nil
	}
	if value != "" {
		return []byte(strings.TrimSpace(value)), nil
	}
	return nil, nil
}

// Enabled reports whether any TLS material was configured.
func (c *ServerConfig) Enabled() bool {
	return c.Certificate != "" || c.CertificateFile != "" || c.PrivateKey != "" || c.PrivateKeyFile != ""
}

// GetPrivateKey returns the private key as an unencrypted PEM block. Both PKCS#8 encrypted keys and legacy
// encrypted PEM blocks are decrypted with the configured password.
func (c *ServerConfig) GetPrivateKey() ([]byte, error) {
	data, err := pemOption(c.PrivateKey, c.PrivateKeyFile, "private key")
	if err != nil || len(data) == 0 {
		return data, err
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.Errorf("Private key is not PEM encoded")
	}

	switch {
	case block.Type == "ENCRYPTED PRIVATE KEY":
		password, err := c.GetPrivateKeyPassword()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed getting the key password")
		}
		key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key")
		}
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "Don't know how to handle %T", key)
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil

	case x509.IsEncryptedPEMBlock(block):
		password, err := c.GetPrivateKeyPassword()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed getting the key password")
		}
		der, err := x509.DecryptPEMBlock(block, password)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key")
		}
		return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
	}

	return data, nil
}

func (c *ServerConfig) GetPrivateKeyPassword() ([]byte, error) {
	if c.PrivateKeyPassword != nil {
		return []byte(*c.PrivateKeyPassword), nil
	}
	if c.PrivateKeyPasswordProgram != "" {
		cmd := exec.Command("sh", "-c", c.PrivateKeyPasswordProgram)
		out := &bytes.Buffer{}
		cmd.Stdout = out
		if err := cmd.Run(); err != nil {
			return nil, errors.Wrapf(err, "Failed executing %s", c.PrivateKeyPasswordProgram)
		}
		return bytes.TrimRight(out.Bytes(), "\r\n"), nil
	}
	return nil, errors.Errorf("Private key is encrypted and no password or password program defined")
}

// GetTlsConfig builds the server TLS configuration. It returns nil without an error if TLS is not configured.
func (c *ServerConfig) GetTlsConfig() (*tls.Config, error) {
	if !c.Enabled() {
		return nil, nil
	}

	certificate, err := pemOption(c.Certificate, c.CertificateFile, "certificate")
	if err != nil {
		return nil, err
	}
	key, err := c.GetPrivateKey()
	if err != nil {
		return nil, err
	}
	pair, err := tls.X509KeyPair(certificate, key)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not create a X509 key pair from given data")
	}

	config := &tls.Config{
		Certificates: []tls.Certificate{pair},
		MinVersion:   tls.VersionTLS12,
	}

	if c.CaCertificateFile != "" {
		ca, err := pemOption("", c.CaCertificateFile, "CA certificate")
		if err != nil {
			return nil, err
		}
		pool := x509.NewCertPool()
		if ok := pool.AppendCertsFromPEM(ca); !ok {
			return nil, errors.Errorf("Could not parse CA certificates from %s", c.CaCertificateFile)
		}
		config.ClientCAs = pool
	}

	if c.RequireClientCert {
		if config.ClientCAs == nil {
			log.Warnf("Client certificates are required but no CA was given, using the system pool")
		}
		config.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return config, nil
}
