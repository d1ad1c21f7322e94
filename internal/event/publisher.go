package event

// Publisher 事件发布接口
type Publisher interface {
	Publish(topic string, msg any) error
}
