// Package docs Probe API의 Swagger 2.0 문서를 등록합니다.
//
// 경로와 모델 정의는 핸들러의 swag 주석(@Summary, @Router 등)과 일치해야 합니다.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "DarkKaiser",
            "url": "https://github.com/DarkKaiser",
            "email": "darkkaiser@gmail.com"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "서버와 점검 세션의 상태를 확인합니다. 등록 서비스가 초기화되지 않았거나 마지막 처리에서 오류가 발생하면 degraded로 표시되며, HTTP 상태는 항상 200입니다.",
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "서버 헬스체크",
                "responses": {
                    "200": {
                        "description": "헬스체크 결과",
                        "schema": {"$ref": "#/definitions/system.HealthResponse"}
                    }
                }
            }
        },
        "/version": {
            "get": {
                "description": "빌드 버전, 커밋, Go 런타임 정보를 반환합니다.",
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "빌드 정보 조회",
                "responses": {
                    "200": {
                        "description": "빌드 정보",
                        "schema": {"$ref": "#/definitions/system.VersionResponse"}
                    }
                }
            }
        },
        "/api/v1/probe/initialize": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "등록 컨트롤을 생성하고 백엔드 등록을 시작합니다. 등록 서비스 호출이 실패해도 200과 함께 Error 상태의 세션을 반환합니다.",
                "produces": ["application/json"],
                "tags": ["Probe"],
                "summary": "등록 서비스 초기화",
                "parameters": [
                    {"type": "string", "description": "Application Key (인증용, 권장)", "name": "X-App-Key", "in": "header"},
                    {"type": "string", "description": "Application Key (인증용, 레거시)", "name": "app_key", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "처리 후 세션 상태", "schema": {"$ref": "#/definitions/probe.Snapshot"}},
                    "401": {"description": "인증 실패", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "시퀀서 종료됨", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/probe/identifier": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "등록이 끝난 기기의 식별자를 조회합니다. 아직 등록되지 않았으면 not_registered 상태와 안내 로그가 기록됩니다.",
                "produces": ["application/json"],
                "tags": ["Probe"],
                "summary": "기기 식별자 조회",
                "parameters": [
                    {"type": "string", "description": "Application Key (인증용, 권장)", "name": "X-App-Key", "in": "header"},
                    {"type": "string", "description": "Application Key (인증용, 레거시)", "name": "app_key", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "처리 후 세션 상태", "schema": {"$ref": "#/definitions/probe.Snapshot"}},
                    "401": {"description": "인증 실패", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "시퀀서 종료됨", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/probe/login": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "설정된 테스트 외부 사용자 ID로 로그인하고, 지연 후 기기 식별자 재조회를 한 번 예약합니다.",
                "produces": ["application/json"],
                "tags": ["Probe"],
                "summary": "테스트 외부 사용자 로그인",
                "parameters": [
                    {"type": "string", "description": "Application Key (인증용, 권장)", "name": "X-App-Key", "in": "header"},
                    {"type": "string", "description": "Application Key (인증용, 레거시)", "name": "app_key", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "처리 후 세션 상태", "schema": {"$ref": "#/definitions/probe.Snapshot"}},
                    "401": {"description": "인증 실패", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "시퀀서 종료됨", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/probe/external-id": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "등록 컨트롤에 연결된 외부 사용자 ID를 조회합니다. 값이 없는 것은 오류가 아닙니다.",
                "produces": ["application/json"],
                "tags": ["Probe"],
                "summary": "외부 사용자 ID 확인",
                "parameters": [
                    {"type": "string", "description": "Application Key (인증용, 권장)", "name": "X-App-Key", "in": "header"},
                    {"type": "string", "description": "Application Key (인증용, 레거시)", "name": "app_key", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "처리 후 세션 상태", "schema": {"$ref": "#/definitions/probe.Snapshot"}},
                    "401": {"description": "인증 실패", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "시퀀서 종료됨", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/probe/session": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "현재 세션 상태, 등록 정보, 로그를 반환합니다.",
                "produces": ["application/json"],
                "tags": ["Probe"],
                "summary": "세션 상태 조회",
                "parameters": [
                    {"type": "string", "description": "Application Key (인증용, 권장)", "name": "X-App-Key", "in": "header"},
                    {"type": "string", "description": "Application Key (인증용, 레거시)", "name": "app_key", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "세션 상태", "schema": {"$ref": "#/definitions/probe.Snapshot"}},
                    "401": {"description": "인증 실패", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/events": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "기기에서 발생한 알림 수신/열람 이벤트를 현재 등록 컨트롤의 훅으로 전달합니다.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Event"],
                "summary": "알림 이벤트 전달",
                "parameters": [
                    {"type": "string", "description": "Application Key (인증용, 권장)", "name": "X-App-Key", "in": "header"},
                    {"type": "string", "description": "Application Key (인증용, 레거시)", "name": "app_key", "in": "query"},
                    {"description": "알림 이벤트", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.EventRequest"}}
                ],
                "responses": {
                    "200": {"description": "성공", "schema": {"$ref": "#/definitions/response.SuccessResponse"}},
                    "400": {"description": "본문 형식 오류 또는 지원하지 않는 이벤트 종류", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "인증 실패", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "이벤트 종류에 해당하는 훅 없음", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "등록 서비스가 초기화되지 않음", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "415": {"description": "지원하지 않는 Content-Type", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "이벤트 전달 미지원 또는 시퀀서 종료됨", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "probe.Identifier": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["unknown", "present", "not_set", "failed"], "example": "present"},
                "value": {"type": "string", "example": "8a1c2f7e-3d4b-4c5a-9e6f-0b1a2c3d4e5f"}
            }
        },
        "probe.LogEntry": {
            "type": "object",
            "properties": {
                "time": {"type": "string", "example": "2025-12-01T14:00:00+09:00"},
                "message": {"type": "string", "example": "2단계: 기기 식별자 조회 중..."}
            }
        },
        "probe.RegistrationRecord": {
            "type": "object",
            "properties": {
                "device_id": {"$ref": "#/definitions/probe.Identifier"},
                "external_user_id": {"$ref": "#/definitions/probe.Identifier"}
            }
        },
        "probe.StatusView": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["idle", "initializing", "pending", "ready", "registered", "not_registered", "logged_in", "login_unconfirmed", "error"], "example": "registered"},
                "text": {"type": "string", "example": "✅ 기기 등록 완료"},
                "color": {"type": "string", "enum": ["grey", "orange", "green", "red"], "example": "green"}
            }
        },
        "probe.Snapshot": {
            "type": "object",
            "properties": {
                "initialized": {"type": "boolean", "example": true},
                "status": {"$ref": "#/definitions/probe.StatusView"},
                "record": {"$ref": "#/definitions/probe.RegistrationRecord"},
                "logs": {"type": "array", "items": {"$ref": "#/definitions/probe.LogEntry"}}
            }
        },
        "request.EventRequest": {
            "type": "object",
            "required": ["type"],
            "properties": {
                "type": {"description": "이벤트 종류: received(수신), opened(열람)", "type": "string", "enum": ["received", "opened"], "example": "received"},
                "notification_id": {"description": "알림 식별자", "type": "string", "maxLength": 128, "example": "b6b3d0b4-7f54-4b1e-9d1e-3f7a1d6f2c10"},
                "title": {"description": "알림 제목", "type": "string", "maxLength": 256, "example": "테스트 알림"},
                "body": {"description": "알림 본문", "type": "string", "maxLength": 4096, "example": "푸시 알림 수신 테스트입니다"},
                "occurred_at": {"description": "이벤트 발생 시각 (생략 시 서버 수신 시각)", "type": "string"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "result_code": {"description": "HTTP 상태 코드 (예: 400, 401, 500)", "type": "integer", "example": 409},
                "message": {"description": "에러 메시지", "type": "string", "example": "등록 서비스가 초기화되지 않았습니다. 먼저 초기화를 실행해주세요"}
            }
        },
        "response.SuccessResponse": {
            "type": "object",
            "properties": {
                "result_code": {"description": "처리 결과 코드 (0: 성공)", "type": "integer", "example": 0},
                "message": {"type": "string", "example": "성공"}
            }
        },
        "system.DependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"description": "헬스체크 상태: healthy, degraded, unhealthy", "type": "string", "example": "healthy"},
                "message": {"description": "상태 상세 정보 또는 에러 메시지", "type": "string", "example": "정상 작동 중"}
            }
        },
        "system.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"description": "전체 헬스체크 상태: healthy, degraded, unhealthy", "type": "string", "example": "healthy"},
                "uptime": {"description": "서버 가동 시간(초)", "type": "integer", "example": 3600},
                "probe_status": {"description": "현재 점검 세션 상태 키", "type": "string", "example": "registered"},
                "dependencies": {
                    "description": "의존성별 헬스체크 결과 (키: 의존성 이름)",
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/system.DependencyStatus"}
                }
            }
        },
        "system.VersionResponse": {
            "type": "object",
            "properties": {
                "version": {"type": "string", "example": "v0.3.0"},
                "commit": {"type": "string", "example": "abc1234"},
                "build_date": {"type": "string", "example": "2025-12-01T14:00:00Z"},
                "go_version": {"type": "string", "example": "go1.24.0"},
                "os": {"type": "string", "example": "linux"},
                "arch": {"type": "string", "example": "amd64"},
                "dirty_build": {"type": "boolean", "example": false}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "description": "Application Key for authentication",
            "type": "apiKey",
            "name": "app_key",
            "in": "query"
        }
    }
}`

// SwaggerInfo Swagger UI(/swagger/*)가 읽는 문서 정보입니다.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Push Probe API",
	Description:      "푸시 알림 등록 점검 세션을 HTTP로 제어하는 REST API입니다.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
