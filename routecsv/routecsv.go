// Package routecsv reads hop policy records from CSV input and writes the
// computed per-hop HTLC values back out as CSV, honoring the exact column
// layout of the route builder's external interface.
package routecsv

import (
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/AbhinavAnand241201/lightning-payment-route-builder/lnwire"
	"github.com/AbhinavAnand241201/lightning-payment-route-builder/routing"
	"github.com/AbhinavAnand241201/lightning-payment-route-builder/routing/route"
)

var (
	// inputHeader is the expected header of the hop policy input file.
	inputHeader = []string{
		"path_id", "channel_name", "cltv_delta", "base_fee_msat",
		"proportional_fee_ppm",
	}

	// outputHeader is the header written ahead of the computed HTLC
	// records.
	outputHeader = []string{
		"path_id", "channel_name", "htlc_amount_msat", "htlc_expiry",
		"tlv",
	}

	// ErrInvalidHeader is returned when the input file's header does not
	// match the expected column layout.
	ErrInvalidHeader = errors.New("invalid input header")
)

// absenceMarker is written in the tlv column for hops that do not carry a
// payment_data record.
const absenceMarker = "NULL"

// ReadHops reads the ordered set of hop policy records from the reader. Row
// order is preserved, it determines both hop order within paths and path
// order across the route.
func ReadHops(r io.Reader) ([]*route.Hop, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(inputHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range inputHeader {
		if header[i] != name {
			return nil, fmt.Errorf("%w: column %v is %q, "+
				"expected %q", ErrInvalidHeader, i, header[i],
				name)
		}
	}

	var hops []*route.Hop
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %v: %w", row, err)
		}

		hop, err := parseHop(record)
		if err != nil {
			return nil, fmt.Errorf("row %v: %w", row, err)
		}

		hops = append(hops, hop)
	}

	return hops, nil
}

// parseHop parses a single input record into a hop policy.
func parseHop(record []string) (*route.Hop, error) {
	pathID, err := strconv.ParseUint(record[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("path_id: %w", err)
	}

	cltvDelta, err := strconv.ParseUint(record[2], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("cltv_delta: %w", err)
	}

	baseFee, err := strconv.ParseUint(record[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("base_fee_msat: %w", err)
	}

	feeRate, err := strconv.ParseUint(record[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("proportional_fee_ppm: %w", err)
	}

	return &route.Hop{
		PathID:      uint32(pathID),
		ChannelName: record[1],
		CLTVDelta:   uint32(cltvDelta),
		BaseFee:     lnwire.MilliSatoshi(baseFee),
		FeeRate:     feeRate,
	}, nil
}

// WriteHTLCs writes the computed HTLCs to the writer, one row per hop in the
// order given. Amounts and expiries render as plain decimal, the tlv column
// carries the lowercase hex payment_data record or the absence marker.
func WriteHTLCs(w io.Writer, htlcs []*routing.HTLC) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(outputHeader); err != nil {
		return err
	}

	for _, htlc := range htlcs {
		tlv := absenceMarker
		if htlc.Record != nil {
			tlv = hex.EncodeToString(htlc.Record.SerializeFixed())
		}

		record := []string{
			strconv.FormatUint(uint64(htlc.PathID), 10),
			htlc.ChannelName,
			strconv.FormatUint(uint64(htlc.Amount), 10),
			strconv.FormatUint(uint64(htlc.Expiry), 10),
			tlv,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}
