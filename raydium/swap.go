package raydium

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/cockroachdb/errors"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// sendAttempts is how many times a swap transaction is retried; each
// attempt refreshes the blockhash, so an expired one does not sink the
// swap.
const sendAttempts = 5

// SignAndSend decodes a base64 swap transaction, refreshes its recent
// blockhash, signs it with the agent keypair, and submits it, retrying up
// to 5 times. Returns the signature of the accepted transaction.
func (c *Client) SignAndSend(ctx context.Context, txBase64 string, signer solana.PrivateKey) (solana.Signature, error) {
	var lastErr error
	for attempt := 0; attempt < sendAttempts; attempt++ {
		sig, err := c.signAndSendOnce(ctx, txBase64, signer)
		if err == nil {
			return sig, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return solana.Signature{}, lastErr
}

func (c *Client) signAndSendOnce(ctx context.Context, txBase64 string, signer solana.PrivateKey) (solana.Signature, error) {
	raw, err := base64.StdEncoding.DecodeString(txBase64)
	if err != nil {
		return solana.Signature{}, errors.WithMessage(err, "failed to decode transaction")
	}

	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return solana.Signature{}, errors.WithMessage(err, "failed to parse transaction")
	}

	recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Signature{}, errors.WithMessage(err, "failed to get latest blockhash")
	}
	tx.Message.RecentBlockhash = recent.Value.Blockhash

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(signer.PublicKey()) {
			return &signer
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, errors.WithMessage(err, "failed to sign transaction")
	}

	sig, err := c.rpc.SendTransaction(ctx, tx)
	if err != nil {
		if strings.Contains(err.Error(), "insufficient lamports") {
			return solana.Signature{}, errors.New(
				"Insufficient SOL to cover transaction fees and account creation costs. " +
					"Need at least 0.004 SOL extra for fees.")
		}
		return solana.Signature{}, errors.WithMessage(err, "Transaction processing failed")
	}
	return sig, nil
}
