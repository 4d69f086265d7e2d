package blindx_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hengadev/blindx"
)

func Example() {
	ctx := context.Background()

	session, err := blindx.NewSession()
	if err != nil {
		log.Fatal(err)
	}
	defer session.Clear()

	if err := session.Initialize(ctx, "bob", "pw1", "000001"); err != nil {
		log.Fatal(err)
	}

	embedding := make([]float64, blindx.Dimension)
	embedding[0] = 1
	blinded, err := session.Transform(ctx, embedding)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(blinded))

	ciphertext, err := session.EncryptText(ctx, "I love dark mode")
	if err != nil {
		log.Fatal(err)
	}
	plaintext, err := session.DecryptText(ctx, ciphertext)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(plaintext)
	// Output:
	// 384
	// I love dark mode
}

func ExampleValidateSeed() {
	fmt.Println(blindx.IsValidSeed("000001"))
	fmt.Println(blindx.IsValidSeed("12345"))
	fmt.Println(blindx.IsValidationError(blindx.ValidateSeed("12a456")))
	// Output:
	// true
	// false
	// true
}

func ExampleSession_Clear() {
	ctx := context.Background()
	session, err := blindx.NewTestSession(ctx)
	if err != nil {
		log.Fatal(err)
	}

	session.Clear()
	_, err = session.EncryptText(ctx, "too late")
	fmt.Println(blindx.IsLifecycleError(err))
	// Output: true
}
