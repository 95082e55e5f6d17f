package cert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io/ioutil"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/youmark/pkcs8"
)

type testMaterial struct {
	dir         string
	certificate string
	key         *ecdsa.PrivateKey
}

func newTestMaterial(t *testing.T) *testMaterial {
	dir, err := ioutil.TempDir("", "base47-cert")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(47),
		Subject:      pkix.Name{CommonName: "localhost"},
		DNSNames:     []string{"localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	m := &testMaterial{dir: dir, key: key}
	m.certificate = m.write(t, "cert.pem", pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
	return m
}

func (m *testMaterial) write(t *testing.T, name string, data []byte) string {
	file := filepath.Join(m.dir, name)
	require.NoError(t, ioutil.WriteFile(file, data, 0600))
	return file
}

func (m *testMaterial) plainKey(t *testing.T) string {
	der, err := x509.MarshalPKCS8PrivateKey(m.key)
	require.NoError(t, err)
	return m.write(t, "key.pem", pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

func (m *testMaterial) encryptedKey(t *testing.T, password string) string {
	der, err := pkcs8.MarshalPrivateKey(m.key, []byte(password), nil)
	require.NoError(t, err)
	return m.write(t, "key.enc.pem", pem.EncodeToMemory(&pem.Block{Type: "ENCRYPTED PRIVATE KEY", Bytes: der}))
}

func Test_NotConfigured(t *testing.T) {
	c := &ServerConfig{}
	require.False(t, c.Enabled())
	config, err := c.GetTlsConfig()
	require.NoError(t, err)
	require.Nil(t, config)
}

func Test_PlainKey(t *testing.T) {
	m := newTestMaterial(t)
	c := &ServerConfig{
		CertificateFile: m.certificate,
		PrivateKeyFile:  m.plainKey(t),
	}

	config, err := c.GetTlsConfig()
	require.NoError(t, err)
	require.Len(t, config.Certificates, 1)
	require.Equal(t, tls.NoClientCert, config.ClientAuth)
}

func Test_EncryptedKey(t *testing.T) {
	m := newTestMaterial(t)
	password := "b4se47"
	c := &ServerConfig{
		CertificateFile:    m.certificate,
		PrivateKeyFile:     m.encryptedKey(t, password),
		PrivateKeyPassword: &password,
	}

	config, err := c.GetTlsConfig()
	require.NoError(t, err)
	require.Len(t, config.Certificates, 1)
}

func Test_EncryptedKeyPasswordProgram(t *testing.T) {
	m := newTestMaterial(t)
	c := &ServerConfig{
		CertificateFile:           m.certificate,
		PrivateKeyFile:            m.encryptedKey(t, "from-program"),
		PrivateKeyPasswordProgram: "echo from-program",
	}

	config, err := c.GetTlsConfig()
	require.NoError(t, err)
	require.Len(t, config.Certificates, 1)
}

func Test_EncryptedKeyWithoutPassword(t *testing.T) {
	m := newTestMaterial(t)
	c := &ServerConfig{
		CertificateFile: m.certificate,
		PrivateKeyFile:  m.encryptedKey(t, "secret"),
	}

	_, err := c.GetTlsConfig()
	require.Error(t, err)
}

func Test_ClientCertificates(t *testing.T) {
	m := newTestMaterial(t)
	c := &ServerConfig{
		CertificateFile:   m.certificate,
		PrivateKeyFile:    m.plainKey(t),
		CaCertificateFile: m.certificate,
		RequireClientCert: true,
	}

	config, err := c.GetTlsConfig()
	require.NoError(t, err)
	require.NotNil(t, config.ClientCAs)
	require.Equal(t, tls.RequireAndVerifyClientCert, config.ClientAuth)
}

func Test_MissingFile(t *testing.T) {
	c := &ServerConfig{
		CertificateFile: "testdata/does-not-exist.pem",
		PrivateKey:      "irrelevant",
	}
	_, err := c.GetTlsConfig()
	require.Error(t, err)
}
