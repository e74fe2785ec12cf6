// Package service 장기 실행 서비스의 공통 생명주기 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service serviceStopCtx가 취소되면 종료 절차를 밟고 serviceStopWG.Done()을 호출합니다.
// Start가 에러를 반환하는 경우에도 serviceStopWG.Done()은 반드시 호출되어야 합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
