package main

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AbhinavAnand241201/lightning-payment-route-builder/lnwire"
	"github.com/AbhinavAnand241201/lightning-payment-route-builder/routecsv"
	"github.com/AbhinavAnand241201/lightning-payment-route-builder/routing"
	"github.com/AbhinavAnand241201/lightning-payment-route-builder/routing/route"
	"github.com/AbhinavAnand241201/lightning-payment-route-builder/zpay32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/urfave/cli"
)

// outputFileName is the name of the result file written in the output
// directory.
const outputFileName = "output.csv"

// buildRoute reads the hop policy file, decodes the payment request and
// writes the computed per-hop HTLC values to the output directory. The
// output file is only created once the whole route computed successfully.
func buildRoute(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) != 4 {
		return errors.New("expected arguments: output-dir input-csv " +
			"payment-request current-height")
	}

	if err := setupLogging(ctx.String("debuglevel")); err != nil {
		return err
	}

	var (
		outputDir      = args[0]
		inputPath      = args[1]
		paymentRequest = args[2]
	)

	currentHeight, err := strconv.ParseUint(args[3], 10, 32)
	if err != nil {
		return fmt.Errorf("current height: %w", err)
	}

	netParams, err := networkParams(ctx.String("network"))
	if err != nil {
		return err
	}

	payment, err := decodePaymentParameters(paymentRequest, netParams)
	if err != nil {
		return err
	}

	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("input file: %w", err)
	}
	defer inputFile.Close()

	hops, err := routecsv.ReadHops(inputFile)
	if err != nil {
		return lnwire.NewCodedError(lnwire.StructuralInput, err)
	}

	rt, err := route.NewRoute(hops)
	if err != nil {
		return lnwire.NewCodedError(lnwire.StructuralInput, err)
	}

	htlcs, err := routing.BuildRoute(rt, payment, uint32(currentHeight))
	if err != nil {
		return err
	}

	// Render the full result before touching the filesystem so that a
	// failed run never leaves a partial output file behind.
	var buf bytes.Buffer
	if err := routecsv.WriteHTLCs(&buf, htlcs); err != nil {
		return err
	}

	outputPath := filepath.Join(outputDir, outputFileName)
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return err
	}

	fmt.Printf("Successfully wrote output to %v\n", outputPath)

	return nil
}

// decodePaymentParameters decodes the payment request and extracts the
// parameters route construction needs from it.
func decodePaymentParameters(paymentRequest string,
	netParams *chaincfg.Params) (*routing.PaymentParameters, error) {

	invoice, err := zpay32.Decode(paymentRequest, netParams)
	if err != nil {
		return nil, lnwire.NewCodedError(
			lnwire.InvalidPaymentParameters,
			fmt.Errorf("payment request: %w", err),
		)
	}

	if invoice.MilliSat == nil {
		return nil, lnwire.NewCodedError(
			lnwire.InvalidPaymentParameters,
			errors.New("payment request has no amount"),
		)
	}

	if invoice.PaymentAddr == nil {
		return nil, lnwire.NewCodedError(
			lnwire.InvalidPaymentParameters,
			errors.New("payment request has no payment secret"),
		)
	}

	finalCLTVDelta := invoice.MinFinalCLTVExpiry()
	if finalCLTVDelta > math.MaxUint32 {
		return nil, lnwire.NewCodedError(
			lnwire.InvalidPaymentParameters,
			fmt.Errorf("final cltv delta %v exceeds 32 bits",
				finalCLTVDelta),
		)
	}

	payment := &routing.PaymentParameters{
		TotalAmount:    *invoice.MilliSat,
		PaymentAddr:    *invoice.PaymentAddr,
		FinalCLTVDelta: uint32(finalCLTVDelta),
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	return payment, nil
}

// networkParams maps a network name to its chain parameters.
func networkParams(network string) (*chaincfg.Params, error) {
	switch network {
	case "mainnet":
		return &chaincfg.MainNetParams, nil

	case "testnet":
		return &chaincfg.TestNet3Params, nil

	case "regtest":
		return &chaincfg.RegressionNetParams, nil

	case "signet":
		return &chaincfg.SigNetParams, nil

	default:
		return nil, fmt.Errorf("unknown network: %v", network)
	}
}
