package zpay32

import (
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Decode parses the provided encoded invoice and returns a decoded Invoice if
// it is valid by BOLT-0011 and matches the provided active network.
func Decode(invoice string, net *chaincfg.Params) (*Invoice, error) {
	decodedInvoice := Invoice{}

	// Before bech32 decoding the invoice, make sure that it is not too
	// large. This avoids an expensive decoding.
	if len(invoice) > maxInvoiceLength {
		return nil, ErrInvoiceTooLarge
	}

	// Decode the invoice using the modified bech32 decoder.
	hrp, data, err := bech32.DecodeNoLimit(invoice)
	if err != nil {
		return nil, err
	}

	// We expect the human-readable part to at least have ln + one char
	// encoding the network.
	if len(hrp) < 3 {
		return nil, fmt.Errorf("hrp too short")
	}

	// First two characters of the invoice should be "ln".
	if !strings.HasPrefix(hrp, "ln") {
		return nil, fmt.Errorf("prefix should be \"ln\"")
	}

	// The next characters should be a valid prefix for a segwit BIP173
	// address that match the active network except for signet where we
	// add an additional "s" to differentiate it from the older testnet3
	// (Core devs decided to use the same hrp for signet as for testnet3
	// which is not optimal for LN).
	expectedPrefix := "ln" + net.Bech32HRPSegwit
	if net.Name == chaincfg.SigNetParams.Name {
		expectedPrefix = "lntbs"
	}
	if !strings.HasPrefix(hrp, expectedPrefix) {
		return nil, fmt.Errorf("invoice not for current active "+
			"network '%s'", net.Name)
	}
	decodedInvoice.Net = net

	// Optionally, if there's anything left of the HRP after the prefix,
	// we assume it is the amount of the invoice.
	amountStr := hrp[len(expectedPrefix):]
	if len(amountStr) > 0 {
		amount, err := decodeAmount(amountStr)
		if err != nil {
			return nil, err
		}
		decodedInvoice.MilliSat = &amount
	}

	// Everything except the last 520 bits of the data encodes the
	// invoice's timestamp and tagged fields.
	if len(data) < timestampBase32Len+signatureBase32Len {
		return nil, fmt.Errorf("short invoice")
	}
	invoiceData := data[:len(data)-signatureBase32Len]

	// Parse the timestamp and tagged fields, and fill the decodedInvoice
	// struct.
	timestamp, err := base32ToUint64(invoiceData[:timestampBase32Len])
	if err != nil {
		return nil, err
	}
	decodedInvoice.Timestamp = time.Unix(int64(timestamp), 0)

	err = parseTaggedFields(
		&decodedInvoice, invoiceData[timestampBase32Len:], net,
	)
	if err != nil {
		return nil, err
	}

	// The last 520 bits (104 groups) make up the signature.
	sigBase32 := data[len(data)-signatureBase32Len:]
	sigBase256, err := bech32.ConvertBits(sigBase32, 5, 8, true)
	if err != nil {
		return nil, err
	}
	var sig [64]byte
	copy(sig[:], sigBase256[:64])
	recoveryID := sigBase256[64]

	// The signature is over the hrp + the data the invoice, encoded in
	// base 256.
	taggedDataBytes, err := bech32.ConvertBits(invoiceData, 5, 8, true)
	if err != nil {
		return nil, err
	}

	toSign := append([]byte(hrp), taggedDataBytes...)

	// We expect the signature to be over the single SHA-256 hash of that
	// data.
	hash := chainhash.HashB(toSign)

	// Recover the payee's public key from the compact signature; if the
	// invoice carried an explicit destination in an 'n' field, the
	// recovered key must match it.
	compactSig := append([]byte{recoveryID + 27 + 4}, sig[:]...)
	pubKey, _, err := ecdsa.RecoverCompact(compactSig, hash)
	if err != nil {
		return nil, err
	}

	if decodedInvoice.Destination != nil {
		if !decodedInvoice.Destination.IsEqual(pubKey) {
			return nil, fmt.Errorf("signature does not match " +
				"destination pubkey")
		}
	} else {
		decodedInvoice.Destination = pubKey
	}

	// Now that we have created the invoice, make sure it has the required
	// fields set.
	if err := validateInvoice(&decodedInvoice); err != nil {
		return nil, err
	}

	return &decodedInvoice, nil
}

// parseTaggedFields takes the base32 encoded tagged fields of the invoice,
// and fills the Invoice struct accordingly.
func parseTaggedFields(invoice *Invoice, fields []byte,
	net *chaincfg.Params) error {

	index := 0
	for len(fields)-index > 0 {
		// If there are less than 3 groups to read, there cannot be
		// more interesting information, as we need the type (1 group)
		// and length (2 groups).
		if len(fields)-index < 3 {
			break
		}

		typ := fields[index]
		dataLength, err := parseFieldDataLength(
			fields[index+1], fields[index+2],
		)
		if err != nil {
			return err
		}

		// If we don't have enough field data left to read this length,
		// return error.
		if len(fields) < index+3+int(dataLength) {
			return ErrInvalidFieldLength
		}
		base32Data := fields[index+3 : index+3+int(dataLength)]

		// Advance the index in preparation for the next iteration.
		index += 3 + int(dataLength)

		switch typ {
		case fieldTypeP:
			if invoice.PaymentHash != nil {
				// We skip the field if we have already seen a
				// supported one.
				continue
			}

			// A reader must skip over a payment hash of an
			// unexpected length.
			if dataLength != hashBase32Len {
				continue
			}

			invoice.PaymentHash, err = parse32Bytes(base32Data)

		case fieldTypeS:
			if invoice.PaymentAddr != nil {
				continue
			}

			if dataLength != hashBase32Len {
				continue
			}

			invoice.PaymentAddr, err = parse32Bytes(base32Data)

		case fieldTypeD:
			if invoice.Description != nil {
				continue
			}

			invoice.Description, err = parseDescription(base32Data)

		case fieldTypeH:
			if invoice.DescriptionHash != nil {
				continue
			}

			if dataLength != hashBase32Len {
				continue
			}

			invoice.DescriptionHash, err = parse32Bytes(base32Data)

		case fieldTypeN:
			if invoice.Destination != nil {
				continue
			}

			if dataLength != pubKeyBase32Len {
				continue
			}

			invoice.Destination, err = parseDestination(base32Data)

		case fieldTypeX:
			if invoice.expiry != nil {
				continue
			}

			invoice.expiry, err = parseExpiry(base32Data)

		case fieldTypeC:
			if invoice.minFinalCLTVExpiry != nil {
				continue
			}

			invoice.minFinalCLTVExpiry, err =
				parseMinFinalCLTVExpiry(base32Data)

		case fieldTypeM:
			if invoice.Metadata != nil {
				continue
			}

			invoice.Metadata, err = parseMetadata(base32Data)

		default:
			// Ignore unknown type.
		}

		// Check if there was an error from parsing any of the tagged
		// fields and return it.
		if err != nil {
			return err
		}
	}

	return nil
}

// parseFieldDataLength converts the two byte slice into a uint16.
func parseFieldDataLength(a, b byte) (uint16, error) {
	if a > 31 || b > 31 {
		return 0, fmt.Errorf("invalid data length: %v", []byte{a, b})
	}

	return uint16(a)<<5 | uint16(b), nil
}

// parse32Bytes converts a data field into a 32-byte array.
func parse32Bytes(data []byte) (*[32]byte, error) {
	var paddedHash [32]byte
	hash, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, err
	}

	copy(paddedHash[:], hash)

	return &paddedHash, nil
}

// parseDescription converts the data field into a string.
func parseDescription(data []byte) (*string, error) {
	base256Data, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, err
	}

	description := string(base256Data)

	return &description, nil
}

// parseDestination converts the data field into a public key.
func parseDestination(data []byte) (*btcec.PublicKey, error) {
	base256Data, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, err
	}

	return btcec.ParsePubKey(base256Data)
}

// parseExpiry converts the data field into the expiry time.
func parseExpiry(data []byte) (*time.Duration, error) {
	expiry, err := base32ToUint64(data)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(expiry) * time.Second

	return &duration, nil
}

// parseMinFinalCLTVExpiry converts the data field into a uint64.
func parseMinFinalCLTVExpiry(data []byte) (*uint64, error) {
	expiry, err := base32ToUint64(data)
	if err != nil {
		return nil, err
	}

	return &expiry, nil
}

// parseMetadata converts the data field into a byte slice.
func parseMetadata(data []byte) ([]byte, error) {
	return bech32.ConvertBits(data, 5, 8, false)
}

// base32ToUint64 converts a base32 encoded number to uint64.
func base32ToUint64(data []byte) (uint64, error) {
	// Maximum that fits in uint64 is ceil(64 / 5) = 13 groups.
	if len(data) > 13 {
		return 0, fmt.Errorf("cannot parse data of length %d as "+
			"uint64", len(data))
	}

	val := uint64(0)
	for i := 0; i < len(data); i++ {
		val = val<<5 | uint64(data[i])
	}

	return val, nil
}
