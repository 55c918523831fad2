package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"quiver-chat/sealkit"
	"quiver-chat/sealkit/keystore"
)

var (
	version = "dev"
	commit  = "unknown"
)

const defaultPassphraseEnv = "SEALKIT_PASSPHRASE"

type config struct {
	KeyFile       string `yaml:"keyFile"`
	PassphraseEnv string `yaml:"passphraseEnv"`
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "keygen":
		runKeygen(args)
	case "pubkey":
		runPubkey(args)
	case "sign":
		runSign(args)
	case "verify":
		runVerify(args)
	case "encrypt":
		runEncrypt(args)
	case "decrypt":
		runDecrypt(args)
	case "seal":
		runSeal(args)
	case "open":
		runOpen(args)
	case "version":
		fmt.Printf("sealkit version=%s commit=%s\n", version, commit)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: sealkit <command> [flags]

commands:
  keygen    generate a private key and write a passphrase-protected key file
  pubkey    print the public key for a key file
  sign      sign a message
  verify    verify a signed envelope and print the message
  encrypt   encrypt a message to a recipient public key
  decrypt   decrypt an encrypted envelope
  seal      sign a message and encrypt it to a recipient
  open      decrypt an envelope and verify the sender
  version   print version`)
}

// loadConfig merges the optional YAML config under the flag values: a flag
// left empty falls back to the config, which falls back to the default.
func loadConfig(path string) config {
	cfg := config{PassphraseEnv: defaultPassphraseEnv}
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("sealkit: read config: %v", err)
	}
	var parsed config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		log.Fatalf("sealkit: parse config: %v", err)
	}
	if parsed.KeyFile != "" {
		cfg.KeyFile = parsed.KeyFile
	}
	if parsed.PassphraseEnv != "" {
		cfg.PassphraseEnv = parsed.PassphraseEnv
	}
	return cfg
}

type commonFlags struct {
	fs         *flag.FlagSet
	configPath *string
	keyFile    *string
}

func newFlags(name string) commonFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return commonFlags{
		fs:         fs,
		configPath: fs.String("config", "", "path to YAML config (optional)"),
		keyFile:    fs.String("key", "", "path to key file"),
	}
}

func (c commonFlags) privateKey() sealkit.PrivateKey {
	cfg := loadConfig(*c.configPath)
	path := *c.keyFile
	if path == "" {
		path = cfg.KeyFile
	}
	if path == "" {
		log.Fatal("sealkit: no key file given (-key or config keyFile)")
	}
	pass := os.Getenv(cfg.PassphraseEnv)
	if pass == "" {
		log.Fatalf("sealkit: passphrase env %s is empty", cfg.PassphraseEnv)
	}
	priv, err := keystore.Load(path, pass)
	if err != nil {
		log.Fatalf("sealkit: load key: %v", err)
	}
	return priv
}

func runKeygen(args []string) {
	c := newFlags("keygen")
	showMnemonic := c.fs.Bool("show-mnemonic", false, "print the BIP-39 backup phrase")
	_ = c.fs.Parse(args)

	cfg := loadConfig(*c.configPath)
	path := *c.keyFile
	if path == "" {
		path = cfg.KeyFile
	}
	if path == "" {
		log.Fatal("sealkit: no output key file given (-key or config keyFile)")
	}
	pass := os.Getenv(cfg.PassphraseEnv)
	if pass == "" {
		log.Fatalf("sealkit: passphrase env %s is empty", cfg.PassphraseEnv)
	}

	priv, err := sealkit.GenerateKey()
	if err != nil {
		log.Fatalf("sealkit: keygen: %v", err)
	}
	if err := keystore.Save(path, pass, priv); err != nil {
		log.Fatalf("sealkit: write key file: %v", err)
	}
	pub := priv.Public()
	fmt.Printf("public key: %s\n", pub.Base64())
	fmt.Printf("fingerprint: %s\n", pub.Fingerprint())
	if *showMnemonic {
		mnemonic, err := priv.Mnemonic()
		if err != nil {
			log.Fatalf("sealkit: mnemonic: %v", err)
		}
		fmt.Printf("backup phrase: %s\n", mnemonic)
	}
}

func runPubkey(args []string) {
	c := newFlags("pubkey")
	_ = c.fs.Parse(args)
	pub := c.privateKey().Public()
	fmt.Printf("public key: %s\n", pub.Base64())
	fmt.Printf("fingerprint: %s\n", pub.Fingerprint())
	fmt.Printf("key id: %s\n", pub.ID())
}

func runSign(args []string) {
	c := newFlags("sign")
	in := c.fs.String("in", "-", "message file, - for stdin")
	out := c.fs.String("out", "-", "envelope output file, - for stdout")
	detach := c.fs.Bool("detach", false, "omit the message body from the envelope")
	noSender := c.fs.Bool("no-sender", false, "omit the sender public key from the envelope")
	_ = c.fs.Parse(args)

	priv := c.privateKey()
	msg := sealkit.NewMessage(readInput(*in))
	env, err := sealkit.Sign(msg, priv, !*detach, !*noSender)
	if err != nil {
		log.Fatalf("sealkit: sign: %v", err)
	}
	writeOutput(*out, env)
}

func runVerify(args []string) {
	c := newFlags("verify")
	in := c.fs.String("in", "-", "envelope file, - for stdin")
	signer := c.fs.String("signer", "", "expected signer public key (base64)")
	_ = c.fs.Parse(args)

	pub, err := sealkit.PublicKeyFromBase64(*signer)
	if err != nil {
		log.Fatalf("sealkit: signer key: %v", err)
	}
	msg, err := sealkit.Verify(readInput(*in), pub)
	if err != nil {
		log.Fatalf("sealkit: verify: %v", err)
	}
	fmt.Println(msg.Text())
}

func runEncrypt(args []string) {
	c := newFlags("encrypt")
	in := c.fs.String("in", "-", "message file, - for stdin")
	out := c.fs.String("out", "-", "envelope output file, - for stdout")
	to := c.fs.String("to", "", "recipient public key (base64)")
	_ = c.fs.Parse(args)

	pub, err := sealkit.PublicKeyFromBase64(*to)
	if err != nil {
		log.Fatalf("sealkit: recipient key: %v", err)
	}
	env, err := sealkit.Encrypt(sealkit.NewMessage(readInput(*in)), pub)
	if err != nil {
		log.Fatalf("sealkit: encrypt: %v", err)
	}
	writeOutput(*out, env)
}

func runDecrypt(args []string) {
	c := newFlags("decrypt")
	in := c.fs.String("in", "-", "envelope file, - for stdin")
	out := c.fs.String("out", "-", "message output file, - for stdout")
	_ = c.fs.Parse(args)

	priv := c.privateKey()
	msg, err := sealkit.Decrypt(readInput(*in), priv)
	if err != nil {
		log.Fatalf("sealkit: decrypt: %v", err)
	}
	writeOutput(*out, msg.Bytes())
}

func runSeal(args []string) {
	c := newFlags("seal")
	in := c.fs.String("in", "-", "message file, - for stdin")
	out := c.fs.String("out", "-", "envelope output file, - for stdout")
	to := c.fs.String("to", "", "recipient public key (base64)")
	anonymous := c.fs.Bool("anonymous", false, "omit the sender public key from the inner envelope")
	_ = c.fs.Parse(args)

	priv := c.privateKey()
	pub, err := sealkit.PublicKeyFromBase64(*to)
	if err != nil {
		log.Fatalf("sealkit: recipient key: %v", err)
	}
	env, err := sealkit.SignAndEncrypt(sealkit.NewMessage(readInput(*in)), priv, pub, !*anonymous)
	if err != nil {
		log.Fatalf("sealkit: seal: %v", err)
	}
	writeOutput(*out, env)
}

func runOpen(args []string) {
	c := newFlags("open")
	in := c.fs.String("in", "-", "envelope file, - for stdin")
	from := c.fs.String("from", "", "expected sender public key (base64)")
	_ = c.fs.Parse(args)

	priv := c.privateKey()
	pub, err := sealkit.PublicKeyFromBase64(*from)
	if err != nil {
		log.Fatalf("sealkit: sender key: %v", err)
	}
	msg, err := sealkit.DecryptAndVerify(readInput(*in), priv, pub)
	if err != nil {
		log.Fatalf("sealkit: open: %v", err)
	}
	fmt.Println(msg.Text())
}

func readInput(path string) []byte {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("sealkit: read stdin: %v", err)
		}
		return data
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("sealkit: read %s: %v", path, err)
	}
	return data
}

func writeOutput(path string, data []byte) {
	if path == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatalf("sealkit: write stdout: %v", err)
		}
		return
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.Fatalf("sealkit: write %s: %v", path, err)
	}
}
