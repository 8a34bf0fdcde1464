package gateways

import (
	"context"
	"errors"
	"fmt"

	"studydesk/internal/core/application/usecases/commands"
	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/pkg/errs"
)

const flowIntake = "intake"

// Intake steps.
const (
	stepGroup            = "group"
	stepUniversity       = "university"
	stepTeacher          = "teacher"
	stepGradebook        = "gradebook"
	stepSubject          = "subject"
	stepSubjectOther     = "subject_other"
	stepWorkType         = "work_type"
	stepWorkTypeOther    = "work_type_other"
	stepGuidelinesChoice = "guidelines_choice"
	stepGuidelinesUpload = "guidelines_upload"
	stepTask             = "task"
	stepExampleChoice    = "example_choice"
	stepExampleUpload    = "example_upload"
	stepDeadline         = "deadline"
	stepComments         = "comments"
	stepConfirmation     = "confirmation"
)

// Session keys shared by the intake steps.
const (
	keyGroup      = "group"
	keyUniversity = "university"
	keyTeacher    = "teacher"
	keyGradebook  = "gradebook"
	keySubject    = "subject"
	keyWorkType   = "work_type"
	keyTaskText   = "task_text"
	keyDeadline   = "deadline"
	keyComments   = "comments"
	fileGuides    = "guidelines"
	fileTask      = "task"
	fileExample   = "example"
)

// newIntakeFlow collects the order details. The draft is saved when the
// customer reaches the confirmation step and promoted on confirmation.
func newIntakeFlow() *flow {
	return &flow{
		name: flowIntake,
		order: []string{
			stepGroup, stepUniversity, stepTeacher, stepGradebook,
			stepSubject, stepSubjectOther, stepWorkType, stepWorkTypeOther,
			stepGuidelinesChoice, stepGuidelinesUpload, stepTask,
			stepExampleChoice, stepExampleUpload, stepDeadline, stepComments, stepConfirmation,
		},
		back: map[string]string{
			stepUniversity:       stepGroup,
			stepTeacher:          stepUniversity,
			stepGradebook:        stepTeacher,
			stepSubject:          stepGradebook,
			stepSubjectOther:     stepSubject,
			stepWorkType:         stepSubject,
			stepWorkTypeOther:    stepWorkType,
			stepGuidelinesChoice: stepWorkType,
			stepGuidelinesUpload: stepGuidelinesChoice,
			stepTask:             stepGuidelinesChoice,
			stepExampleChoice:    stepTask,
			stepExampleUpload:    stepExampleChoice,
			stepDeadline:         stepExampleChoice,
			stepComments:         stepDeadline,
			stepConfirmation:     stepComments,
		},
		steps: map[string]step{
			stepGroup:      textStep("Введите номер вашей учебной группы:", keyGroup, stepUniversity),
			stepUniversity: textStep("Введите название вашего университета:", keyUniversity, stepTeacher),
			stepTeacher:    textStep("Введите ФИО преподавателя:", keyTeacher, stepGradebook),
			stepGradebook:  textStep("Введите номер зачётной книжки:", keyGradebook, stepSubject),
			stepSubject: catalogStep("Выберите предмет или введите его название:",
				order.Subjects, keySubject, stepSubjectOther, stepWorkType),
			stepSubjectOther: textStep("Введите название предмета:", keySubject, stepWorkType),
			stepWorkType: catalogStep("Выберите тип работы или введите свой:",
				order.WorkTypes, keyWorkType, stepWorkTypeOther, stepGuidelinesChoice),
			stepWorkTypeOther: textStep("Введите тип работы:", keyWorkType, stepGuidelinesChoice),
			stepGuidelinesChoice: yesNoStep("Есть ли методические указания?",
				fileGuides, stepGuidelinesUpload, stepTask),
			stepGuidelinesUpload: fileStep("Прикрепите файл с методичкой (pdf, docx, png, jpg):", fileGuides, stepTask),
			stepTask: {
				prompt: func(*request) (string, [][]chat.Button) {
					return "Прикрепите файл с заданием или опишите его текстом:", nil
				},
				accept: acceptTask,
				hint:   "Пришлите файл pdf, docx, png или jpg до 15 МБ либо текст задания.",
			},
			stepExampleChoice: yesNoStep("Есть ли пример выполненной работы?",
				fileExample, stepExampleUpload, stepDeadline),
			stepExampleUpload: fileStep("Прикрепите пример работы:", fileExample, stepDeadline),
			stepDeadline: {
				prompt: func(*request) (string, [][]chat.Button) {
					return "Укажите срок сдачи в формате ДД.ММ.ГГГГ:", nil
				},
				accept: func(_ context.Context, r *request, in Input) (string, error) {
					raw, err := text(in, "deadline")
					if err != nil {
						return "", err
					}
					date, err := kernel.NormalizeDate(raw)
					if err != nil {
						return "", err
					}
					r.set(keyDeadline, date)
					return stepComments, nil
				},
				hint: "Дата должна быть в формате ДД.ММ.ГГГГ, например 05.06.2026.",
			},
			stepComments: {
				prompt: func(*request) (string, [][]chat.Button) {
					return "Добавьте комментарий к заказу или нажмите «Пропустить»:", nil
				},
				accept:    acceptComments,
				skippable: true,
			},
			stepConfirmation: {
				prompt: func(r *request) (string, [][]chat.Button) {
					summary := intakeDetails(r).Summary()
					return "📝 <b>Проверьте заявку</b>\n\n" + summary, [][]chat.Button{
						chat.Row(chat.NewButton("✅ Подтвердить", chat.ActionConfirmDraft, r.session.OrderID, "")),
					}
				},
				accept: acceptConfirmation,
				hint:   "Нажмите «Подтвердить», «Назад» или «Отмена». Все обязательные поля должны быть заполнены.",
			},
		},
		abort: discardIntakeDraft,
	}
}

func textStep(prompt, key, next string) step {
	return step{
		prompt: func(*request) (string, [][]chat.Button) { return prompt, nil },
		accept: func(_ context.Context, r *request, in Input) (string, error) {
			value, err := text(in, key)
			if err != nil {
				return "", err
			}
			r.set(key, value)
			return next, nil
		},
		hint: "Введите значение текстом.",
	}
}

// catalogStep offers options plus order.OtherOption. Choosing "other" leads to
// the free-text follow-up; typing a value directly is accepted as is.
func catalogStep(prompt string, options []string, key, otherStep, next string) step {
	all := append(append([]string(nil), options...), order.OtherOption)
	return step{
		prompt: func(r *request) (string, [][]chat.Button) { return prompt, choices(r, all) },
		accept: func(_ context.Context, r *request, in Input) (string, error) {
			value, ok, err := chosen(r, in, all)
			if err != nil {
				return "", err
			}
			if ok && value == order.OtherOption {
				r.unset(key)
				return otherStep, nil
			}
			if !ok {
				if value, err = text(in, key); err != nil {
					return "", err
				}
			}
			r.set(key, value)
			return next, nil
		},
		hint: "Выберите вариант из списка или введите свой.",
	}
}

// yesNoStep asks whether an optional file exists. "No" clears a file kept
// from an earlier pass.
func yesNoStep(prompt, fileKey, uploadStep, next string) step {
	return step{
		prompt: func(r *request) (string, [][]chat.Button) { return prompt, yesNo(r) },
		accept: func(_ context.Context, r *request, in Input) (string, error) {
			answer, ok, err := chosen(r, in, []string{"Да", "Нет"})
			if err != nil {
				return "", err
			}
			if !ok {
				return "", errs.NewValueIsRequiredError("answer")
			}
			if answer == "Да" {
				return uploadStep, nil
			}
			r.unset(fileKey)
			return next, nil
		},
		hint: "Ответьте кнопкой «Да» или «Нет».",
	}
}

func fileStep(prompt, fileKey, next string) step {
	return step{
		prompt: func(*request) (string, [][]chat.Button) { return prompt, nil },
		accept: func(_ context.Context, r *request, in Input) (string, error) {
			f, err := upload(r, in, fileKey)
			if err != nil {
				return "", err
			}
			r.setFile(fileKey, f)
			return next, nil
		},
		hint: "Пришлите файл pdf, docx, png или jpg размером до 15 МБ.",
	}
}

func acceptTask(_ context.Context, r *request, in Input) (string, error) {
	if in.HasFile() {
		f, err := upload(r, in, fileTask)
		if err != nil {
			return "", err
		}
		r.unset(keyTaskText)
		r.setFile(fileTask, f)
		return stepExampleChoice, nil
	}

	value, err := text(in, "task")
	if err != nil {
		return "", err
	}
	r.unset(fileTask)
	r.set(keyTaskText, value)
	return stepExampleChoice, nil
}

// acceptComments stores the comment and saves the draft, superseding an
// earlier save of the same draft.
func acceptComments(ctx context.Context, r *request, in Input) (string, error) {
	comment := order.NoComment
	if !in.Skipped {
		value, err := text(in, "comments")
		if err != nil {
			return "", err
		}
		comment = value
	}
	r.set(keyComments, comment)

	cmd, err := commands.NewSaveDraftCommand(r.actor, r.session.OrderID, intakeDetails(r), r.env.now())
	if err != nil {
		return "", err
	}
	id, err := r.env.Commands.SaveDraft.Handle(ctx, cmd)
	if err != nil {
		return "", err
	}
	r.session.OrderID = id
	return stepConfirmation, nil
}

func acceptConfirmation(ctx context.Context, r *request, in Input) (string, error) {
	if !in.Confirm {
		return "", errs.NewValueIsRequiredError("confirmation")
	}

	cmd, err := commands.NewConfirmOrderCommand(r.actor, r.session.OrderID)
	if err != nil {
		return "", err
	}
	o, err := r.env.Commands.ConfirmOrder.Handle(ctx, cmd)
	if err != nil {
		return "", err
	}

	r.reply(ctx, fmt.Sprintf("✅ Заявка №%d отправлена на рассмотрение. Мы сообщим, когда найдём исполнителя.", o.ID()))
	return stepDone, nil
}

func discardIntakeDraft(ctx context.Context, r *request) error {
	if r.session.OrderID == 0 {
		return nil
	}
	cmd, err := commands.NewDiscardDraftCommand(r.actor, r.session.OrderID)
	if err != nil {
		return err
	}
	err = r.env.Commands.DiscardDraft.Handle(ctx, cmd)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	return err
}

func intakeDetails(r *request) order.Details {
	return order.Details{
		Group:      r.value(keyGroup),
		University: r.value(keyUniversity),
		Teacher:    r.value(keyTeacher),
		Gradebook:  r.value(keyGradebook),
		Subject:    r.value(keySubject),
		WorkType:   r.value(keyWorkType),
		Guidelines: r.file(fileGuides),
		TaskFile:   r.file(fileTask),
		TaskText:   r.value(keyTaskText),
		Example:    r.file(fileExample),
		Deadline:   r.value(keyDeadline),
		Comments:   r.value(keyComments),
	}
}
