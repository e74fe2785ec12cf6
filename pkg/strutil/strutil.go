// Package strutil 로그와 메시지 출력에 쓰이는 문자열 유틸리티를 제공합니다.
package strutil

import (
	"strings"
	"unicode/utf8"
)

// MaskPrefix 앞 n글자만 남기고 "..."를 붙입니다.
// 애플리케이션 ID처럼 식별은 가능해야 하지만 전체를 노출하지 않을 값에 사용합니다.
// 예: MaskPrefix("6bb7df1b-6014-498a", 8) -> "6bb7df1b..."
func MaskPrefix(s string, n int) string {
	if s == "" {
		return ""
	}
	if n <= 0 {
		return "..."
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n]) + "..."
}

// MaskSensitiveData 토큰, API 키 등의 민감 정보를 마스킹합니다.
func MaskSensitiveData(data string) string {
	switch {
	case data == "":
		return ""
	case len(data) <= 3:
		return "***"
	case len(data) <= 12:
		return data[:4] + "***"
	default:
		return data[:4] + "***" + data[len(data)-4:]
	}
}

// Truncate 문자열을 최대 max 글자로 자르고, 잘린 경우 "..."를 덧붙입니다.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	return string([]rune(s)[:max]) + "..."
}

// SplitAndTrim 구분자로 분리한 뒤 공백을 제거하고 빈 항목을 제외합니다.
// 결과가 없으면 nil을 반환합니다.
// 예: "a, , b,c" (구분자 ",") -> ["a", "b", "c"]
func SplitAndTrim(s, sep string) []string {
	var result []string
	for _, token := range strings.Split(s, sep) {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}

	return result
}
