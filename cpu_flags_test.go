package vera65c02

import "testing"

// TestADCFlagLaw verifies testable property 1: for all (a, v, carry-in),
// hex-mode ADC sets carry iff the 9-bit sum exceeds $FF, overflow iff a
// and v agree in sign and differ from the result, zero/sign from the
// 8-bit result.
func TestADCFlagLaw(t *testing.T) {
	cpu, _ := newTestCPU()
	for a := 0; a < 256; a++ {
		for v := 0; v < 256; v++ {
			for carryIn := 0; carryIn < 2; carryIn++ {
				cpu.A = byte(a)
				cpu.P = 0
				cpu.setFlag(FlagCarry, carryIn == 1)

				sum := a + v + carryIn
				wantCarry := sum > 0xFF
				result := byte(sum)
				wantOverflow := (byte(a)^byte(v))&0x80 == 0 && (byte(a)^result)&0x80 != 0
				wantZero := result == 0
				wantSign := result&0x80 != 0

				cpu.adcHex(byte(v))

				if cpu.A != result {
					t.Fatalf("a=%d v=%d cin=%d: A=%d want %d", a, v, carryIn, cpu.A, result)
				}
				if cpu.flag(FlagCarry) != wantCarry {
					t.Fatalf("a=%d v=%d cin=%d: carry=%v want %v", a, v, carryIn, cpu.flag(FlagCarry), wantCarry)
				}
				if cpu.flag(FlagOverflow) != wantOverflow {
					t.Fatalf("a=%d v=%d cin=%d: overflow=%v want %v", a, v, carryIn, cpu.flag(FlagOverflow), wantOverflow)
				}
				if cpu.flag(FlagZero) != wantZero {
					t.Fatalf("a=%d v=%d cin=%d: zero=%v want %v", a, v, carryIn, cpu.flag(FlagZero), wantZero)
				}
				if cpu.flag(FlagNegative) != wantSign {
					t.Fatalf("a=%d v=%d cin=%d: sign=%v want %v", a, v, carryIn, cpu.flag(FlagNegative), wantSign)
				}
			}
		}
	}
}

func bcdDecode(b byte) int { return int(b>>4)*10 + int(b&0x0F) }
func bcdEncode(v int) byte { return byte(v/10)<<4 | byte(v%10) }

// TestBCDRoundTrip verifies testable property 2: with decimal mode set and
// carry-in 0, ADC on two valid BCD digit pairs leaves A as the BCD
// encoding of (decode(a)+decode(v)) mod 100 and carry as whether the sum
// reached 100.
func TestBCDRoundTrip(t *testing.T) {
	cpu, _ := newTestCPU()
	for da := 0; da <= 99; da++ {
		for dv := 0; dv <= 99; dv++ {
			cpu.A = bcdEncode(da)
			cpu.P = FlagDecimal
			cpu.setFlag(FlagCarry, false)

			cpu.adc(bcdEncode(dv))

			wantSum := da + dv
			wantA := bcdEncode(wantSum % 100)
			wantCarry := wantSum >= 100

			if cpu.A != wantA {
				t.Fatalf("da=%d dv=%d: A=%#x want %#x", da, dv, cpu.A, wantA)
			}
			if cpu.flag(FlagCarry) != wantCarry {
				t.Fatalf("da=%d dv=%d: carry=%v want %v", da, dv, cpu.flag(FlagCarry), wantCarry)
			}
		}
	}
}
