package main

import (
	"os"
)

// @title Push Probe API
// @version 1.0.0
// @description 푸시 알림 등록 점검 세션을 HTTP로 제어하는 REST API입니다.
// @description
// @description 초기화, 기기 식별자 조회, 테스트 외부 사용자 로그인, 외부 사용자 ID 확인의 네 단계를
// @description 버튼처럼 호출하고, 각 호출 후의 세션 상태와 로그를 그대로 돌려받습니다.
// @description
// @description ## 인증 방법
// @description 설정 파일(push-probe.json)의 probe_api.app_key가 비어 있지 않으면 /api/v1 아래 모든 엔드포인트에 인증이 필요합니다.
// @description - **권장**: X-App-Key 헤더로 전달
// @description - **레거시**: app_key 쿼리 파라미터로 전달

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser
// @contact.email darkkaiser@gmail.com

// @license.name MIT

// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in query
// @name app_key
// @description Application Key for authentication

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
