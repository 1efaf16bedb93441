package webclip

import (
	"bytes"
	"context"
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/porticus-lab/webclip/pdf"
)

func testInputs(t *testing.T, n int) [][]byte {
	t.Helper()
	inputs := make([][]byte, n)
	for i := range inputs {
		// Distinct widths make the order visible in the result.
		inputs[i] = encodeJPEG(t, gradient(10+i, 6))
	}
	return inputs
}

func TestPreparePages_Order(t *testing.T) {
	inputs := testInputs(t, 12)

	pages, err := PreparePages(context.Background(), inputs, WithWorkers(4))
	if err != nil {
		t.Fatalf("PreparePages: %v", err)
	}

	want := make([]pdf.PageImage, len(inputs))
	for i, in := range inputs {
		want[i] = pdf.PageImage{Name: pdf.DefaultName(i), Width: 10 + i, Height: 6, Data: in}
	}
	if diff := cmp.Diff(want, pages); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestPreparePages_FirstErrorInOrder(t *testing.T) {
	inputs := testInputs(t, 6)
	inputs[2] = []byte("garbage")
	inputs[4] = nil

	_, err := PreparePages(context.Background(), inputs, WithWorkers(1))
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrEmptyImage) {
		t.Errorf("got the error of input 5, want the one of input 3: %v", err)
	}
}

func TestPreparePages_NoInputs(t *testing.T) {
	if _, err := PreparePages(context.Background(), nil); !errors.Is(err, ErrNoPages) {
		t.Fatalf("expected ErrNoPages, got %v", err)
	}
}

func TestPreparePages_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PreparePages(ctx, testInputs(t, 3))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCompose(t *testing.T) {
	inputs := testInputs(t, 2)
	inputs[1] = encodePNG(t, gradient(7, 3))

	res, err := Compose(context.Background(), inputs)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !bytes.HasPrefix(res.Bytes(), []byte(pdf.Header)) {
		t.Error("result does not start with the PDF header")
	}
	if res.Pages() != 2 {
		t.Errorf("Pages() = %d, want 2", res.Pages())
	}
	for _, box := range []string{"/MediaBox [0 0 10 6]", "/MediaBox [0 0 7 3]"} {
		if !bytes.Contains(res.Bytes(), []byte(box)) {
			t.Errorf("missing %s", box)
		}
	}
	if !bytes.Contains(res.Bytes(), inputs[0]) {
		t.Error("baseline JPEG is not embedded verbatim")
	}
}

func TestCompose_Deterministic(t *testing.T) {
	inputs := testInputs(t, 5)
	a, err := Compose(context.Background(), inputs, WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compose(context.Background(), inputs, WithWorkers(8))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("worker count changed the output")
	}
}

func TestBuild_Error(t *testing.T) {
	_, err := build([]pdf.PageImage{{Width: 0, Height: 1, Data: []byte{1}}})
	if !errors.Is(err, pdf.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}

	_, err = build([]pdf.PageImage{{Width: 1, Height: 1, Data: encodeJPEG(t, image.NewRGBA(image.Rect(0, 0, 1, 1)))}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
}
