package main

import (
	"flag"
	"log"

	"github.com/dmitrymomot/pki2fa/pkg/keypair"
)

func main() {
	bits := flag.Int("bits", keypair.DefaultBits, "RSA modulus size in bits")
	privatePath := flag.String("private", "student_private.pem", "output path of the PKCS#8 private key")
	publicPath := flag.String("public", "student_public.pem", "output path of the SPKI public key")
	flag.Parse()

	privatePEM, publicPEM, err := keypair.Generate(*bits)
	if err != nil {
		log.Fatalf("Failed to generate key pair: %v", err)
	}

	if err := keypair.WriteFiles(*privatePath, *publicPath, privatePEM, publicPEM); err != nil {
		log.Fatalf("Failed to write key pair: %v", err)
	}

	log.Printf("Generated %d-bit RSA key pair: %s, %s", *bits, *privatePath, *publicPath)
}
