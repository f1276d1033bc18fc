package check

import (
	"calorie-tracker/enums"
	"calorie-tracker/services/rabbitmq"
	"calorie-tracker/services/trackLog"
	"calorie-tracker/structs"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

type AliveResponse struct {
	Success  bool      `json:"success"`
	Messsage string    `json:"message"`
	Info     CheckInfo `json:"info"`
}

type CheckInfo struct {
	Queues     []string               `json:"queue"`
	RoutineNum int                    `json:"routine_num"`
	Statistic  structs.StatisticModel `json:"statistic"`
}

// CheckAlive reports the rabbitmq queues, goroutine count and worker statistics.
func CheckAlive(statistic func() structs.StatisticModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		rabbitConn := rabbitmq.GetConnection(enums.ConnectionName)
		resMsg := "main thread alive"
		checkInfo := CheckInfo{}
		success := true
		//檢查mq實體是否在連線池
		if rabbitConn != nil {
			// 檢查mq連線
			if rabbitConn.Conn == nil || rabbitConn.Conn.IsClosed() {
				resMsg = "Api detect Connection lost, Reconnecting.."
				trackLog.Error(resMsg, false)
				if err := rabbitConn.Reconnect(); err != nil {
					resMsg = fmt.Sprintf("reconnect rabbit fail: %s", err.Error())
					trackLog.Error(resMsg, false)
					success = false
				}
			}
			//檢查mq channel
			if rabbitConn.Channel != nil {
				for _, q := range rabbitConn.Queues {
					//檢查每一個queue
					queue, queueErr := rabbitConn.Channel.QueueInspect(q)
					if queueErr != nil {
						resMsg = fmt.Sprintf("Queue[%s] error: %s", q, queueErr.Error())
						trackLog.Error(resMsg, false)
					} else {
						// queue的狀態
						queueJson, _ := json.Marshal(queue)
						checkInfo.Queues = append(checkInfo.Queues, string(queueJson))
					}
				}
			} else {
				resMsg = "Channel get fail"
				trackLog.Error(resMsg, false)
				success = false
			}
			// 花1秒檢查是否重連線
			select {
			case err := <-rabbitConn.ApiErr:
				trackLog.Error(fmt.Sprintf("api error: %s", err.Error()), false)
				if err := rabbitConn.Reconnect(); err != nil {
					resMsg = fmt.Sprintf("reconnect rabbit fail: %s", err.Error())
					trackLog.Error(resMsg, false)
					success = false
				}
			case <-time.After(time.Second * 1):
			}
		} else {
			resMsg = "Get connection pool fail"
			trackLog.Error(resMsg, false)
			success = false
		}

		// 檢查gorutine數目
		checkInfo.RoutineNum = runtime.NumGoroutine()
		if statistic != nil {
			checkInfo.Statistic = statistic()
		}

		c.JSON(http.StatusOK, AliveResponse{success, resMsg, checkInfo})
	}
}
