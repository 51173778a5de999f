package urbcsp

const (
	im1  = 2147483563
	im2  = 2147483399
	am   = 1.0 / im1
	imm1 = im1 - 1
	ia1  = 40014
	ia2  = 40692
	iq1  = 53668
	iq2  = 52774
	ir1  = 12211
	ir2  = 3791
	ntab = 32
	ndiv = 1 + imm1/ntab
	eps  = 1.2e-7
	rnmx = 1.0 - eps
)

// Rand is the ran2 generator of Numerical Recipes in C (2nd ed.): two
// L'Ecuyer linear congruential streams combined through a Bays-Durham
// shuffle table. The zero value is not usable; call NewRand.
type Rand struct {
	idum  int32
	idum2 int32
	iy    int32
	iv    [ntab]int32
}

// NewRand returns a generator seeded with seed. A seed <= 0 starts a new
// sequence on the first draw; a positive seed continues an uninitialised
// table, exactly like calling ran2 with a positive idum.
func NewRand(seed int32) *Rand {
	return &Rand{idum: seed, idum2: 123456789}
}

// Seed returns the current state word. It is negative or zero only until
// the first draw.
func (r *Rand) Seed() int32 { return r.idum }

func (r *Rand) step() {
	k := r.idum / iq1
	r.idum = ia1*(r.idum-k*iq1) - k*ir1
	if r.idum < 0 {
		r.idum += im1
	}
}

// Float32 returns a value in the open interval (0, 1).
func (r *Rand) Float32() float32 {
	if r.idum <= 0 {
		if -r.idum < 1 {
			r.idum = 1
		} else {
			r.idum = -r.idum
		}
		r.idum2 = r.idum
		for j := ntab + 7; j >= 0; j-- {
			r.step()
			if j < ntab {
				r.iv[j] = r.idum
			}
		}
		r.iy = r.iv[0]
	}
	r.step()

	k := r.idum2 / iq2
	r.idum2 = ia2*(r.idum2-k*iq2) - k*ir2
	if r.idum2 < 0 {
		r.idum2 += im2
	}

	j := r.iy / ndiv
	r.iy = r.iv[j] - r.idum2
	r.iv[j] = r.idum
	if r.iy < 1 {
		r.iy += imm1
	}

	temp := float32(am * float64(r.iy))
	if float64(temp) > rnmx {
		return float32(rnmx)
	}
	return temp
}

// Between returns an int in [lo, hi).
func (r *Rand) Between(lo, hi int) int {
	return lo + int(r.Float32()*float32(hi-lo))
}
