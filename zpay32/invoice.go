package zpay32

import (
	"errors"
	"time"

	"github.com/AbhinavAnand241201/lightning-payment-route-builder/lnwire"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
)

const (
	// maxInvoiceLength is the maximum total length an invoice can have.
	// This is chosen to be the maximum number of bytes that can fit into
	// a single QR code: https://en.wikipedia.org/wiki/QR_code#Storage.
	maxInvoiceLength = 7089

	// DefaultInvoiceExpiry is the default expiry duration from the
	// creation timestamp if expiry is set to zero.
	DefaultInvoiceExpiry = time.Hour

	// DefaultMinFinalCLTVExpiry is the default value used for the final
	// hop's CLTV requirement when the invoice does not carry one.
	DefaultMinFinalCLTVExpiry = 18
)

var (
	// ErrInvoiceTooLarge is returned when an invoice exceeds
	// maxInvoiceLength.
	ErrInvoiceTooLarge = errors.New("invoice is too large")

	// ErrInvalidFieldLength is returned when a tagged field was specified
	// with a length larger than the left over bytes of the data field.
	ErrInvalidFieldLength = errors.New("invalid field length")
)

// fieldType is the type of a tagged data field in the invoice's data part.
const (
	// fieldTypeP is the field containing the payment hash.
	fieldTypeP = 1

	// fieldTypeR contains extra routing information.
	fieldTypeR = 3

	// fieldType9 contains the feature bits.
	fieldType9 = 5

	// fieldTypeX contains the expiry in seconds.
	fieldTypeX = 6

	// fieldTypeF contains a fallback on-chain address.
	fieldTypeF = 9

	// fieldTypeD contains a short description of the payment.
	fieldTypeD = 13

	// fieldTypeS contains a 32-byte payment address, which is a random
	// value included in the MPP record by the sender to prevent probing
	// of the receiver.
	fieldTypeS = 16

	// fieldTypeN contains the pubkey of the target node.
	fieldTypeN = 19

	// fieldTypeH contains the hash of a description of the payment.
	fieldTypeH = 23

	// fieldTypeC contains an optional requirement for the CLTV expiry of
	// the final HTLC.
	fieldTypeC = 24

	// fieldTypeM contains the payment metadata.
	fieldTypeM = 27

	// signatureBase32Len is the number of 5-bit groups needed to encode
	// the 512 bit signature + 8 bit recovery ID.
	signatureBase32Len = 104

	// timestampBase32Len is the number of 5-bit groups needed to encode
	// the 35 bit timestamp.
	timestampBase32Len = 7

	// hashBase32Len is the number of 5-bit groups needed to encode a
	// 256 bit hash. Note that the last group will be padded with zeroes.
	hashBase32Len = 52

	// pubKeyBase32Len is the number of 5-bit groups needed to encode a
	// 33-byte compressed pubkey. Note that the last group will be padded
	// with zeroes.
	pubKeyBase32Len = 53
)

// Invoice represents a decoded invoice, or to-be-encoded invoice. Some of the
// fields are optional, and will only be non-nil in case the invoice this was
// parsed from contains that field.
type Invoice struct {
	// Net specifies what network this Lightning invoice is meant for.
	Net *chaincfg.Params

	// MilliSat specifies the amount of this invoice in millisatoshi.
	// Optional.
	MilliSat *lnwire.MilliSatoshi

	// Timestamp specifies the time this invoice was created.
	// Mandatory
	Timestamp time.Time

	// PaymentHash is the payment hash to be used for a payment to this
	// invoice.
	PaymentHash *[32]byte

	// PaymentAddr is the payment address to be used by payments to
	// prevent probing of the destination.
	// Optional.
	PaymentAddr *[32]byte

	// Destination is the public key of the target node. This will always
	// be set after decoding, and can optionally be set before encoding to
	// include the pubkey as an 'n' field. If this is not set before
	// encoding then the destination pubkey won't be added as an 'n' field,
	// and the pubkey will be extracted from the signature during decoding.
	Destination *btcec.PublicKey

	// minFinalCLTVExpiry is the value that the creator of the invoice
	// expects to be used for the CLTV expiry of the HTLC extended to it
	// in the last hop.
	//
	// NOTE: This value is optional, and should be set to nil if the
	// invoice its part of doesn't require a custom value.
	minFinalCLTVExpiry *uint64

	// Description is a short description of the purpose of this invoice.
	// Optional. Non-nil iff DescriptionHash is nil.
	Description *string

	// DescriptionHash is the SHA256 hash of a description of the purpose
	// of this invoice. Optional. Non-nil iff Description is nil.
	DescriptionHash *[32]byte

	// expiry specifies the timespan this invoice will be valid.
	// Optional. If not set, a default expiry of 60 min will be implied.
	expiry *time.Duration

	// Metadata is additional data that is sent along with the payment to
	// the payee.
	Metadata []byte
}

// Expiry returns the invoice's expiry time, or a default expiry time (1 hour)
// if none was specified.
func (invoice *Invoice) Expiry() time.Duration {
	if invoice.expiry != nil {
		return *invoice.expiry
	}

	return DefaultInvoiceExpiry
}

// MinFinalCLTVExpiry returns the minimum expiry delta the creator of the
// invoice expects for the final HTLC, or a default value if the invoice does
// not specify one.
func (invoice *Invoice) MinFinalCLTVExpiry() uint64 {
	if invoice.minFinalCLTVExpiry != nil {
		return *invoice.minFinalCLTVExpiry
	}

	return DefaultMinFinalCLTVExpiry
}

// validateInvoice does a sanity check of the provided Invoice, making sure it
// has all the necessary fields set for it to be considered valid by BOLT-11.
func validateInvoice(invoice *Invoice) error {
	// The net must be set.
	if invoice.Net == nil {
		return errors.New("net params not set")
	}

	// The invoice must contain a payment hash.
	if invoice.PaymentHash == nil {
		return errors.New("no payment hash found")
	}

	// Either Description or DescriptionHash must be set, not both.
	if invoice.Description != nil && invoice.DescriptionHash != nil {
		return errors.New("both description and description hash set")
	}
	if invoice.Description == nil && invoice.DescriptionHash == nil {
		return errors.New("neither description nor description " +
			"hash set")
	}

	// The invoice must contain a destination after decoding.
	if invoice.Destination == nil {
		return errors.New("no destination set")
	}

	return nil
}
