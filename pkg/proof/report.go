package proof

import (
	"fmt"
	"io"
)

// WriteReport prints the proof in the submission layout: the hash, the
// base64 ciphertext on its own line, then both on a single copyable line.
func WriteReport(w io.Writer, p CommitProof) error {
	encoded := p.Encoded()
	_, err := fmt.Fprintf(w,
		"Commit Hash: %s\nEncrypted Signature (base64):\n%s\n\n--- One-line pair (copy for submission) ---\n%s %s\n",
		p.CommitHash, encoded, p.CommitHash, encoded,
	)
	return err
}
