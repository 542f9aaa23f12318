package word

import "testing"

func TestShiftLaws(t *testing.T) {
	t.Run("SRA of -1 is always -1", func(t *testing.T) {
		t.Parallel()

		neg1 := FromSigned(-1)

		for k := Word(0); k < 33; k++ {
			if got := neg1.Sra(k); got != neg1 {
				t.Errorf("SRA(-1, %d) = %s, want %s", k, got, neg1)
			}
		}
	})

	t.Run("SRL of -1 by 1 clears the sign bit", func(t *testing.T) {
		t.Parallel()

		got := FromSigned(-1).Srl(1)
		want := Word(0x7fffffff)

		if got != want {
			t.Errorf("SRL(-1, 1) = %s, want %s", got, want)
		}
	})

	t.Run("SLL matches multiplication by a power of two mod 2^32", func(t *testing.T) {
		t.Parallel()

		for _, tc := range []struct{ x, k int32 }{
			{1, 0}, {1, 31}, {3, 4}, {-7, 2}, {0x0fffffff, 8},
		} {
			x := FromSigned(tc.x)
			got := x.Sll(Word(tc.k))
			want := Word(uint32(tc.x) * (1 << uint(tc.k)))

			if got != want {
				t.Errorf("SLL(%d, %d) = %s, want %s", tc.x, tc.k, got, want)
			}
		}
	})
}

func TestDivTruncates(t *testing.T) {
	cases := []struct{ a, b, want int32 }{
		{7, 2, 3},
		{-7, 2, -3},
		{7, -2, -3},
		{-7, -2, 3},
	}

	for _, c := range cases {
		got := FromSigned(c.a).Div(FromSigned(c.b))
		if got.Signed() != c.want {
			t.Errorf("Div(%d, %d) = %d, want %d", c.a, c.b, got.Signed(), c.want)
		}
	}
}
