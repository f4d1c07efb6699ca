package paginator

import "testing"

func TestCompute_MaxEntroDieci(t *testing.T) {
	// con al massimo 10 pagine la finestra è sempre [1, max],
	// qualunque sia la pagina corrente
	for page := 1; page <= 10; page++ {
		w := Compute(95, 10, page) // 10 pagine
		if w.Max != 10 || w.Inizio != 1 || w.Fine != 10 {
			t.Errorf("pagina %d: attesa finestra [1,10] max=10, ottenuta [%d,%d] max=%d",
				page, w.Inizio, w.Fine, w.Max)
		}
	}

	w := Compute(31, 10, 2) // 4 pagine
	if w.Inizio != 1 || w.Fine != 4 {
		t.Errorf("attesa finestra [1,4], ottenuta [%d,%d]", w.Inizio, w.Fine)
	}
}

func TestCompute_FinestraScorrevole(t *testing.T) {
	// 25 pagine: 250 elementi, 10 per pagina
	cases := []struct {
		page         int
		inizio, fine int
	}{
		{3, 1, 10},
		{14, 10, 19},
		{20, 16, 25},
		{25, 16, 25},
		{1, 1, 10},
	}
	for _, tc := range cases {
		w := Compute(250, 10, tc.page)
		if w.Max != 25 {
			t.Fatalf("pagina %d: atteso max=25, ottenuto %d", tc.page, w.Max)
		}
		if w.Inizio != tc.inizio || w.Fine != tc.fine {
			t.Errorf("pagina %d: attesa finestra [%d,%d], ottenuta [%d,%d]",
				tc.page, tc.inizio, tc.fine, w.Inizio, w.Fine)
		}
	}
}

func TestCompute_Invarianti(t *testing.T) {
	// larghezza sempre min(10, max), estremi sempre in [1, max]
	for total := int64(1); total <= 400; total += 13 {
		for page := 1; page <= 40; page++ {
			w := Compute(total, 10, Clamp(page, w0max(total)))
			width := w.Fine - w.Inizio + 1
			expected := 10
			if w.Max < 10 {
				expected = w.Max
			}
			if width != expected {
				t.Fatalf("total=%d page=%d: larghezza %d, attesa %d", total, page, width, expected)
			}
			if w.Inizio < 1 || w.Fine > w.Max {
				t.Fatalf("total=%d page=%d: finestra [%d,%d] fuori da [1,%d]",
					total, page, w.Inizio, w.Fine, w.Max)
			}
		}
	}
}

func w0max(total int64) int {
	m := int((total + 9) / 10)
	if m < 1 {
		m = 1
	}
	return m
}

func TestCompute_ZeroElementi(t *testing.T) {
	w := Compute(0, 10, 1)
	if w.Max != 1 || w.Inizio != 1 || w.Fine != 1 {
		t.Errorf("attesa finestra [1,1] max=1, ottenuta [%d,%d] max=%d", w.Inizio, w.Fine, w.Max)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(0, 5); got != 1 {
		t.Errorf("Clamp(0,5)=%d, atteso 1", got)
	}
	if got := Clamp(9, 5); got != 5 {
		t.Errorf("Clamp(9,5)=%d, atteso 5", got)
	}
	if got := Clamp(3, 5); got != 3 {
		t.Errorf("Clamp(3,5)=%d, atteso 3", got)
	}
}
