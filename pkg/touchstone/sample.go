package touchstone

import "strings"

const onePortSample = `! 1-port S-parameter data
# GHZ S MA R 50
!
! Frequency (GHz)   S11 (mag)   S11 (phase)
0.50                0.100        -30.0
1.00                0.050        -45.0
1.50                0.030        -60.0
2.00                0.020        -75.0
2.50                0.015        -90.0
`

const twoPortSample = `! 2-port S-parameter data
# GHZ S MA R 50
!
! Frequency   S11 (mag)   S11 (phase)   S21 (mag)   S21 (phase)   S12 (mag)   S12 (phase)   S22 (mag)   S22 (phase)
0.50          0.100        -30.0         0.950       -5.0          0.050       -180.0        0.150        -20.0
1.00          0.050        -45.0         0.980       -8.0          0.030       -180.0        0.100        -30.0
1.50          0.030        -60.0         0.990       -10.0         0.020       -180.0        0.080        -35.0
2.00          0.020        -75.0         0.992       -12.0         0.015       -180.0        0.060        -40.0
`

// Example returns a small demo file with the given port count (1 or 2).
func Example(ports int) string {
	if ports == 2 {
		return twoPortSample
	}
	return onePortSample
}

// FileExtension returns the conventional extension for a port count, e.g. ".s2p".
func FileExtension(ports int) string {
	if ports == 2 {
		return ".s2p"
	}
	return ".s1p"
}

// IsTouchstoneName reports whether a file name has an .s1p or .s2p extension.
func IsTouchstoneName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".s1p") || strings.HasSuffix(lower, ".s2p")
}
