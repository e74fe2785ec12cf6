package probe

import (
	"fmt"
	"time"
)

// 세션 로그 문구
const (
	msgSeparator = "=================================================="

	msgStarted            = "🚀 푸시 등록 점검을 시작합니다"
	msgAutoInitScheduled  = "%s 후 등록 서비스를 자동으로 초기화합니다..."
	msgAutoStartDuplicate = "⚠️ 자동 시작은 세션당 한 번만 수행됩니다 (중복 요청 무시)"

	msgInitStep     = "1단계: 등록 서비스 초기화 중..."
	msgAppID        = "App ID: %s"
	msgProvider     = "Provider: %s"
	msgControlReady = "✅ 등록 컨트롤 생성 완료"
	msgRegisterSent = "✅ 백엔드 등록 요청 시작"
	msgInitDone     = "✅ 초기화 완료!"
	msgInitNext     = "다음 단계: %s~%s 기다린 뒤 '기기 식별자 조회'를 실행하세요"
	msgReplaced     = "기존 등록 컨트롤을 새 컨트롤로 교체합니다"

	msgFetchStep          = "2단계: 기기 식별자 조회 중..."
	msgFetchNotInit       = "❌ 등록 서비스가 초기화되지 않았습니다! 먼저 '초기화'를 실행하세요"
	msgFetchReturned      = "DeviceID() 반환값: %s"
	msgFetchSuccess       = "✅ 성공! 기기가 푸시 서비스에 등록되었습니다"
	msgFetchDeviceID      = "기기 식별자: %s"
	msgFetchDashboard     = "다음 단계: 대시보드의 Audience → All Users 에서 사용자 1명이 보이는지 확인하세요"
	msgFetchAbsent        = "⚠️ 기기 식별자가 없습니다"
	msgFetchAbsentMeaning = "기기가 아직 푸시 서비스에 등록되지 않았다는 뜻입니다"
	msgFetchCauses        = "가능한 원인:"
	msgFetchRetry         = "조치: %s 더 기다린 뒤 '기기 식별자 조회'를 다시 실행하세요"
	msgAutoRefetch        = "기기 식별자를 자동으로 다시 조회합니다..."

	msgLoginStep        = "3단계: 외부 사용자 ID로 로그인 중..."
	msgLoginNotInit     = "❌ 등록 서비스가 초기화되지 않았습니다!"
	msgLoginCall        = "Login('%s') 호출..."
	msgLoginReturned    = "Login() 반환값: %t"
	msgLoginSuccess     = "✅ 로그인 성공!"
	msgLoginUnconfirmed = "⚠️ Login()이 false를 반환했습니다 (그래도 동작했을 수 있음)"
	msgLoginRefetch     = "%s 후 기기 식별자를 다시 조회합니다..."

	msgCheckStep     = "4단계: 외부 사용자 ID 확인 중..."
	msgCheckNotInit  = "❌ 등록 서비스가 초기화되지 않았습니다!"
	msgCheckReturned = "ExternalUserID() 반환값: %s"
	msgCheckPresent  = "✅ 외부 사용자 ID: %s"
	msgCheckAbsent   = "⚠️ 외부 사용자 ID가 없습니다 (로그인되지 않음)"

	msgError = "❌ 오류: %v"

	msgNotificationReceived = "알림 수신: %s"
	msgNotificationOpened   = "알림 열람: %s"
)

// notRegisteredCauses 기기 식별자가 없을 때 안내하는 원인 목록입니다.
// wait는 재조회 대기 시간이며 등록 소요 시간 안내에 사용됩니다.
func notRegisteredCauses(wait time.Duration) []string {
	return []string{
		fmt.Sprintf("  1. 등록에 필요한 시간이 아직 지나지 않음 (%s~%s 필요)", wait, 2*wait),
		"  2. 인터넷 연결 없음",
		"  3. 애플리케이션 ID(App ID)가 올바르지 않음",
		"  4. 푸시 자격 증명(Firebase FCM)이 설정되지 않음",
	}
}

// 상태 문구를 대체하는 상세 문구
const (
	detailLoginPending  = "⏳ %s(으)로 로그인 중..."
	detailNotRegistered = "⏳ 아직 등록되지 않음: %s 후 다시 시도하세요"
	detailError         = "❌ 오류: %v"
)
