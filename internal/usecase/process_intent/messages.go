package process_intent

// Chat replies, in the tenant-facing language of the product. The bot
// forwards these verbatim to WhatsApp.
const (
	msgScheduled           = "Agendamento realizado com sucesso para %s às %s. Seu código é %s."
	msgConflict            = "Este horário não está disponível. Horários alternativos: %s."
	msgConflictNoAlts      = "Este horário não está disponível e não há outros horários livres neste dia."
	msgServiceNotFound     = "Serviço não encontrado. Serviços disponíveis: %s."
	msgNoServices          = "Nenhum serviço cadastrado no momento."
	msgProfessionalMissing = "Profissional não encontrado."
	msgPastDate            = "Não é possível agendar para uma data ou horário no passado."
	msgInvalidPayload      = "Não entendi o pedido. Verifique os dados e tente novamente."
	msgInternal            = "Ocorreu um erro inesperado. Tente novamente em instantes."

	msgCancelled        = "Agendamento %s cancelado com sucesso."
	msgCancelNotFound   = "Nenhum agendamento ativo encontrado para o código %s."
	msgCancelNotAllowed = "Este agendamento pertence a outro número de telefone."

	msgConfirmed       = "Agendamento %s confirmado com sucesso."
	msgConfirmNotFound = "Agendamento já confirmado ou não encontrado."

	msgSlots      = "Horários disponíveis em %s: %s."
	msgNoSlots    = "Não há horários disponíveis em %s."
	msgDayClosed  = "Não atendemos em %s."
	msgDateTooFar = "Essa data está muito distante. Escolha uma data mais próxima."
)
