package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type config struct {
	Network       string   `long:"network" short:"n" description:"Network prefix: kaspa, kaspatest, kaspasim, kaspadev" default:"kaspa"`
	PrivateKey    string   `long:"private-key" short:"k" description:"Hex-encoded 32-byte Schnorr private key" required:"true"`
	ChangeAddress string   `long:"change-address" description:"Address to send change to (defaults to the private key's own address)"`
	ToAddress     string   `long:"to-address" short:"t" description:"Payment destination address"`
	SendAmount    uint64   `long:"send-amount" short:"v" description:"Amount to send, in Sompi"`
	Sweep         bool     `long:"sweep" description:"Consolidate every supplied UTXO to the change address instead of paying an address"`
	FeeSompi      int64    `long:"fee" description:"Explicit fee in Sompi; positive is sender-pays, negative is receiver-pays, omitted derives the fee from mass"`
	Payload       string   `long:"payload" description:"Hex-encoded transaction payload"`
	UTXOs         []string `long:"utxo" description:"A spendable UTXO, as txID:index:amount (repeatable)"`
}

func parseConfig() (*config, error) {
	cfg := &config{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	if !cfg.Sweep && (cfg.ToAddress == "" || cfg.SendAmount == 0) {
		return nil, errors.New("--to-address and --send-amount are required unless --sweep is given")
	}
	if len(cfg.UTXOs) == 0 {
		return nil, errors.New("at least one --utxo is required")
	}

	return cfg, nil
}
