// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package date

// Precision selects how many fractional-second
// digits are written when formatting a time.
// Values 0 through 9 write exactly that many digits.
type Precision int

const (
	// Auto writes as many digits as necessary,
	// omitting the fraction entirely when it is zero.
	Auto Precision = -1
	// Minute omits the seconds entirely.
	Minute Precision = -2
)

// AppendYear appends an ISO 8601 year to b.
// Years outside [0, 9999] use the six-digit
// signed extended format.
func AppendYear(b []byte, y int) []byte {
	if y >= 0 && y <= 9999 {
		return appendInt(b, y, 4)
	}
	if y < 0 {
		b = append(b, '-')
		y = -y
	} else {
		b = append(b, '+')
	}
	return appendInt(b, y, 6)
}

// AppendDate appends d as YYYY-MM-DD.
func AppendDate(b []byte, d Date) []byte {
	b = AppendYear(b, d.Year)
	b = append(b, '-')
	b = appendInt(b, d.Month, 2)
	b = append(b, '-')
	return appendInt(b, d.Day, 2)
}

// AppendYearMonth appends d as YYYY-MM.
func AppendYearMonth(b []byte, d Date) []byte {
	b = AppendYear(b, d.Year)
	b = append(b, '-')
	return appendInt(b, d.Month, 2)
}

// AppendMonthDay appends d as MM-DD.
func AppendMonthDay(b []byte, d Date) []byte {
	b = appendInt(b, d.Month, 2)
	b = append(b, '-')
	return appendInt(b, d.Day, 2)
}

// AppendTime appends t as HH:MM[:SS[.fffffffff]]
// with the requested precision. The time is not
// rounded; callers round before formatting.
func AppendTime(b []byte, t Time, p Precision) []byte {
	b = appendInt(b, t.Hour, 2)
	b = append(b, ':')
	b = appendInt(b, t.Minute, 2)
	if p == Minute {
		return b
	}
	b = append(b, ':')
	b = appendInt(b, t.Second, 2)
	return AppendFraction(b, t.SubsecondNanos(), p)
}

// AppendFraction appends a decimal point followed by
// the fraction ns/1e9 with precision p.
func AppendFraction(b []byte, ns int, p Precision) []byte {
	if p == Auto {
		if ns == 0 {
			return b
		}
		b = append(b, '.')
		return appendTrimmed(b, ns, 9)
	}
	if p <= 0 {
		return b
	}
	if p > 9 {
		p = 9
	}
	b = append(b, '.')
	var digits [9]byte
	for i := 8; i >= 0; i-- {
		digits[i] = byte('0' + ns%10)
		ns /= 10
	}
	return append(b, digits[:p]...)
}

// AppendDateTime appends dt as YYYY-MM-DDTHH:MM:SS.fff.
func AppendDateTime(b []byte, dt DateTime, p Precision) []byte {
	b = AppendDate(b, dt.Date)
	b = append(b, 'T')
	return AppendTime(b, dt.Time, p)
}

func (d Date) String() string {
	return string(AppendDate(make([]byte, 0, len("+000000-00-00")), d))
}

func (t Time) String() string {
	return string(AppendTime(make([]byte, 0, len("00:00:00.000000000")), t, Auto))
}

func (dt DateTime) String() string {
	return string(AppendDateTime(nil, dt, Auto))
}

// appendInt appends the decimal form of x to b and
// returns the result. If the decimal form (excluding
// sign) is shorter than width, the result is padded
// with leading 0's.
func appendInt(b []byte, x int, width int) []byte {
	u := uint(x)
	if x < 0 {
		b = append(b, '-')
		u = uint(-x)
	}

	// Assemble decimal in reverse order.
	var buf [20]byte
	i := len(buf)
	for u >= 10 {
		i--
		q := u / 10
		buf[i] = byte('0' + u - q*10)
		u = q
	}
	i--
	buf[i] = byte('0' + u)

	// Add 0-padding.
	for w := len(buf) - i; w < width; w++ {
		b = append(b, '0')
	}

	return append(b, buf[i:]...)
}

// appendTrimmed appends x padded to width digits
// with trailing zeroes removed.
func appendTrimmed(b []byte, x int, width int) []byte {
	start := len(b)
	b = appendInt(b, x, width)
	end := len(b)
	for end > start+1 && b[end-1] == '0' {
		end--
	}
	return b[:end]
}
