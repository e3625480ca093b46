package server

// Данный сервер просто объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей
type Server struct {
	ItemServer
}

func NewServer(
	itemServer ItemServer,
) Server {
	return Server{
		ItemServer: itemServer,
	}
}
