// Package qrcode renders enrollment URIs as QR codes.
//
// It wraps github.com/skip2/go-qrcode. Generate returns PNG bytes, WriteFile
// stores the PNG with owner-only permissions (the image encodes a shared
// secret) and Terminal renders the code with Unicode half blocks for display
// in a console:
//
//	uri, _ := totp.GetTOTPURI(params)
//	if err := qrcode.WriteFile(uri, 256, "enroll.png"); err != nil {
//		return err
//	}
//	fmt.Print(qrcode.Terminal(uri))
//
// Errors are declared as package-level variables and can be compared with
// errors.Is.
package qrcode
